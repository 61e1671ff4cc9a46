// Package invoke parses command-line task tokens of the form
// `name[item,item,...]` into a structured invocation: the (possibly
// abbreviated) task name, ordered positional arguments, and keyword
// arguments. Argument values are kept as opaque strings.
package invoke
