// Package furniq extracts structured attributes from free-form furniture
// search queries. Given text such as "grey velvet sofa with elevated arms"
// it recognizes the product type, brand, product name, features, styles and
// places, maps every recognized phrase to a canonical label and scores the
// overall extraction.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, matchr/, ahocorasick/).
package furniq
