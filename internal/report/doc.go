// Package report writes the colour-coded .xlsx audit report.
//
// Each course row carries three cells per asset type (found locally,
// local path, Drive status) and is filled green when everything is
// present, yellow when partially found, and red when nothing was found
// anywhere.
package report
