// Package printing turns store reports into HTML and PDF.
//
// TemplateEngine renders the embedded report templates. ChromedpRenderer
// prints the HTML through headless Chrome. ReportArchive keeps the files in
// object storage.
package printing
