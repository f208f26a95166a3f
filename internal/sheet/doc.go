// Package sheet reads course rows from spreadsheet files.
//
// Workbooks (.xlsx) are the primary input because asset cells carry their
// Google Drive URL as a hyperlink behind a friendly display label; reading
// only cell values would discard the link. A CSV fallback accepts the same
// column layout with the URL written directly into the cell.
//
// A Reader is configured with the header labels for the course identity
// columns and the set of asset column labels whose links should be
// collected. Rows with an empty or placeholder course name are skipped and
// duplicate course names keep their first occurrence.
package sheet
