// Package templates provides project scaffolding for hashview init.
//
// # Available Templates
//
//   - minimal: a page with one module (markup, style and script)
//   - lang: the minimal page with its text moved into a lang file
//
// # Usage
//
//	tmpl, err := templates.Get("minimal")
//	if err != nil {
//	    return err
//	}
//	files, err := tmpl.Create(projectDir, templates.Config{ProjectName: "shop"})
//
// # Template Variables
//
// Files are Go text templates delimited by [[ and ]], so that lang
// placeholders such as {{title}} pass through untouched:
//
//	[[.ProjectName]]     - Name of the project
//	[[.Title]]           - Page title
package templates
