// Package table reads and writes the numeric data tables exchanged by the
// bundled tasks.
//
// A Table has zero or more leading index columns holding row labels and any
// number of numeric data columns. ReadCSV and ReadXLSX detect index columns
// the same way: a leading column is an index column while its header is empty,
// starts with "Unnamed" or "_", or its first value is not a number. Index
// names are normalized to carry a leading underscore so that they stay
// distinguishable from data columns when written back out.
//
// Deserialize, SerializeCSV, and SerializeJSON adapt the package to the
// describe.Deserializer and describe.Serializer capabilities.
package table
