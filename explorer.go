// Package explorer is a small web application that serves a reference
// tabular dataset through a browser UI.
//
// It loads one named dataset (the Titanic passenger manifest by default)
// once at startup, then offers three things:
//
//   - a landing page,
//   - five prepared analysis questions, each producing a text or table
//     summary plus a rendered chart image,
//   - an interactive data browser: pick columns, apply a single filter
//     (operator + value), and page through a bounded view of the rows.
//
// The interesting logic lives in the resolver package: resolving
// user-supplied column names, inferring whether a comparison should be
// numeric or string-based, building a row mask, and producing a bounded
// view. The dataset package holds the immutable in-memory table, reports
// holds the canned analyses, and web is the thin HTTP layer on top.
//
// The table is read-only after load, so every request-scoped operation is
// a pure function over shared immutable state — no locking anywhere.
package explorer
