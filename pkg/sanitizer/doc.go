// Package sanitizer provides string cleanup transforms applied to untrusted
// form input before validation and storage.
//
// The central transform is StripMarkup, which discards HTML/XML tags and
// their attributes while keeping the visible text between them. Script and
// style bodies are dropped entirely since their content is never visible
// text. Transforms never fail; they are plain string to string functions
// that can be chained with Apply or Compose.
//
// # Usage
//
//	clean := sanitizer.Apply(input,
//		sanitizer.StripMarkup,
//		sanitizer.Trim,
//	)
package sanitizer
