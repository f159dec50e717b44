// Package errors provides coded, actionable errors for the hashview tools.
//
// Every error carries a code (e.g., "H101") registered with a category, a
// short message and a longer explanation. Errors raised while reading a page
// or lang file can point at the offending line, and the terminal formatter
// prints the surrounding lines:
//
//	err := errors.New("H101").
//	    WithLocation("app.page", 4, 1).
//	    WithDetail(`no file found for module "widgets/list"`).
//	    WithSuggestion("Create widgets/list.js or fix the path")
//
//	fmt.Print(err.Format())
//	// ERROR H101: Module not found
//	//
//	//   app.page:4:1
//	//
//	//        2 │ !css main.css
//	//        3 │
//	//   →    4 │ widgets/list
//	//          │ ^
//	//
//	//   no file found for module "widgets/list"
//	//
//	//   Hint: Create widgets/list.js or fix the path
//
// # Categories
//
//   - route: route token encoding and dispatch
//   - template: template lookup
//   - build: page bundling
//   - config: hashview.json
//   - publish: uploads
//   - cli: command usage
package errors
