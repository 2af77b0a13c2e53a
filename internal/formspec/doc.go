// Package formspec turns a YAML form description into widgets and a
// validator.Form. It backs the formcheck command and lets forms be declared
// without Go code:
//
//	mode: burst
//	lookups:
//	  usernames:
//	    type: memory
//	    values: [admin, root]
//	    fold_case: true
//	fields:
//	  - name: username
//	    widget: edit_text
//	    value: " Admin "
//	    sanitize: [trim]
//	    rules:
//	      - kind: order
//	        value: 1
//	      - kind: not_empty
//	      - kind: unique
//	        lookup: usernames
//
// Every rule entry names an annotation by its Kind; the remaining keys decode
// into the annotation's yaml tags, and unknown keys are rejected.
package formspec
