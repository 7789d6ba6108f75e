// Package processor applies the directive filter to every eligible file of a
// directory tree, rewriting each file in place.
//
// Files are independent of each other. With FilterOptions.Workers above one
// they are filtered concurrently; the filter itself is always sequential
// within a file. Without KeepGoing the first failing file cancels the run,
// and files rewritten before the failure stay rewritten.
package processor
