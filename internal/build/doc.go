// Package build bundles a hashview page.
//
// A page file lists the modules that make up a single-page application, one
// entry per line:
//
//	# shop.page
//	!charset utf-8
//	!entry_point main()
//	!include common.page
//	widgets/list
//	main
//
// Every non-directive line names a module: the files <name>.html, .htm,
// .css, .js and .hdr that exist next to it. HTML files are inlined into the
// body (usually as <template> elements), headers into <head>, styles and
// scripts are linked. At least one file of a module must exist.
//
// Directives:
//
//	!include <file>     parse another page file, relative to the current one
//	!html <file>        output HTML name, relative to the root directory
//	!css <file>         collapsed CSS name
//	!js <file>          collapsed JS name
//	!dir <dir>          root directory for outputs and links
//	!charset <cp>       <meta charset> of the output page
//	!entry_point <fn>   body onload handler, e.g. "main()"
//
// Source files pull in other files with a require comment in the style of
// their language. Required files come first and each file is included once:
//
//	//!require util.js
//	/*!require base.css*/
//	<!--!require dialog.html-->
//
// With a lang file (key=value lines, # comments, !include), every {{key}}
// in the page file and in inlined content is replaced by its value, or by
// the key itself when the key is unknown.
//
// # Usage
//
//	b := build.New(cfg, build.Options{Logger: logger})
//	result, err := b.Build(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("wrote", result.HTML)
package build
