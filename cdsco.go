// Package cdsco provides keyword search across documents published on
// paginated government listing pages, such as the CDSCO Subject Expert
// Committee notices. It discovers downloadable documents from listing
// pages, fetches and extracts their text, and scans the text for
// keyword occurrences with surrounding context.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// goquery/, pdfcpu/, sqlite/).
package cdsco
