package moneybook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The book is persisted as JSONL: one record per line, identified by a
// "record" discriminator. The format is human-readable and git-friendly;
// the whole file is rewritten on save (whole-collection replace).

// recordType is a typed string for identifying book records.
type recordType string

const (
	recTransaction recordType = "transaction"
	recAsset       recordType = "asset"
	recInsight     recordType = "insight"
)

// EncodeBook writes the whole book to w in canonical JSONL form:
// transactions first (chronological), then assets, then insights.
func EncodeBook(w io.Writer, b *Book) error {
	for _, tx := range b.Transactions {
		if err := encodeRecord(w, recTransaction, tx); err != nil {
			return err
		}
	}
	for _, a := range b.Assets {
		if err := encodeRecord(w, recAsset, a); err != nil {
			return err
		}
	}
	for _, in := range b.Insights {
		if err := encodeRecord(w, recInsight, in); err != nil {
			return err
		}
	}
	return nil
}

func encodeRecord(w io.Writer, rec recordType, v any) error {
	var obj jsonObjectWriter
	obj.Append("record", rec)
	obj.EmbedFrom(v)
	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode %s record: %w", rec, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// DecodeBook reads a JSONL stream of book records and returns the
// reconstructed book, transactions sorted chronologically.
func DecodeBook(r io.Reader) (*Book, error) {
	b := NewBook()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var identifier struct {
			Record recordType `json:"record"`
		}
		if err := json.Unmarshal(raw, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify record on line %d: %w", line, err)
		}

		switch identifier.Record {
		case recTransaction:
			tx := &Transaction{}
			if err := json.Unmarshal(raw, tx); err != nil {
				return nil, fmt.Errorf("invalid transaction on line %d: %w", line, err)
			}
			b.Transactions = append(b.Transactions, tx)
		case recAsset:
			a := &Asset{}
			if err := json.Unmarshal(raw, a); err != nil {
				return nil, fmt.Errorf("invalid asset on line %d: %w", line, err)
			}
			b.Assets = append(b.Assets, a)
		case recInsight:
			in := &Insight{}
			if err := json.Unmarshal(raw, in); err != nil {
				return nil, fmt.Errorf("invalid insight on line %d: %w", line, err)
			}
			b.Insights = append(b.Insights, in)
		default:
			return nil, fmt.Errorf("unknown record type %q on line %d", identifier.Record, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	b.sortTransactions()
	return b, nil
}
