// Package ofx converts brokerage activity between CSV statements and the
// Open Financial Exchange (OFX) investment-statement format.
//
// The package is organized around three stages:
//   - Compile: turn statement rows (txn_type, trade_date, symbol, amounts)
//     into an immutable Ledger with normalized signs, stable transaction
//     ids and a security registry.
//   - Assemble: build the OFX response tree for a ledger (signon response,
//     investment statement, security list).
//   - Render: emit the version header block and the XML body, OFX 1.x or
//     2.x style depending on the requested version.
//
// The sgml subpackage goes the other way: it repairs the tag-unbalanced
// SGML that institutions serve for OFX 1.x downloads into well-formed XML.
//
// Everything is synchronous and deterministic: compiling the same rows in
// the same order always produces the same ledger, ids included, so a
// statement can be regenerated idempotently.
package ofx
