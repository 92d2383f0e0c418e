// Package moneybook implements a personal ledger that tracks cash
// transactions and a portfolio of valued assets and liabilities over time.
//
// The core of the package is temporal: each asset carries a sparse history
// of dated value snapshots, and the valuation engine reconstructs what the
// asset, and the whole book, was worth on any calendar day from those
// snapshots alone. Mutation (recording values, retiring assets) lives on
// [Book]; valuation ([ValueAt], [SnapshotAt]) is pure and stateless.
//
// The package also contains the clients for the two external collaborators
// the application talks to: the blob-sync service that stores whole books
// per user, and the market price oracle used to refresh ticker-linked
// assets.
package moneybook
