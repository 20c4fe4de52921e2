// Package multiform decodes multipart/form-data request bodies into plain
// form fields and uploaded files.
//
// A body is split on its boundary into parts. Each part is classified as a
// file upload, a legacy application/octet-stream field or a plain field, and
// its value is stored under the part's name. Names may carry a single bracket
// suffix: "tags[]" appends to a list and "address[city]" sets a key of a map.
// Uploaded file contents are handed to a [FileSink], which by default writes
// them to the system temporary directory. Removing stored files is left to
// the caller.
//
// Decoding is lenient. Parts that cannot be understood are dropped rather
// than reported, so a malformed part and an omitted part look the same to
// the caller.
package multiform
