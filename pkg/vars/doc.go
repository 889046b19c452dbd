// Package vars builds variable tables from command-line arguments and
// variable files, and maintains the YAML key/value store written by the
// save command.
//
// Variable files are chosen by extension:
//
//	.yaml, .yml   a flat YAML mapping
//	.xml          Java XML properties (<entry key="k">v</entry>)
//	anything else key=value lines
package vars
