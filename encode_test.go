package moneybook

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

const sampleBook = `{"record":"transaction","id":"t1","date":"2024-01-05","type":"income","category":"salary","amount":3000,"description":"january pay"}
{"record":"transaction","id":"t2","date":"2024-01-10","type":"expense","category":"food","amount":120.5}
{"record":"asset","id":"a1","name":"deposit","type":"savings","purchaseAmount":0,"currentValue":500,"history":[{"date":"2024-01-01","value":500}],"lastUpdated":"2024-01-01T09:00:00Z","createdAt":"2024-01-01"}
{"record":"asset","id":"a2","name":"shares","type":"stock","purchaseAmount":900,"currentValue":1100,"history":[{"date":"2024-01-01","value":900},{"date":"2024-02-01","value":1100}],"lastUpdated":"2024-02-01T09:00:00Z","createdAt":"2024-01-01","ticker":"AAPL","quantity":5,"unitPrice":220}
{"record":"insight","id":"i1","date":"2024-02-01T09:30:00Z","analysis":"steady month","suggestions":["keep the food budget flat"],"tips":"automate the savings transfer"}
`

func TestDecodeBook(t *testing.T) {
	b, err := DecodeBook(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("DecodeBook: %v", err)
	}
	if len(b.Transactions) != 2 || len(b.Assets) != 2 || len(b.Insights) != 1 {
		t.Fatalf("decoded %d transactions, %d assets, %d insights; want 2, 2, 1",
			len(b.Transactions), len(b.Assets), len(b.Insights))
	}
	if got := b.Transactions[1].Amount; !got.Equal(dec(120.5)) {
		t.Errorf("transaction amount = %v, want 120.5", got)
	}

	a, err := b.Asset("a2")
	if err != nil {
		t.Fatalf("Asset(a2): %v", err)
	}
	if a.Ticker != "AAPL" || !a.Quantity.Equal(dec(5)) {
		t.Errorf("market fields = %q/%v, want AAPL/5", a.Ticker, a.Quantity)
	}
	if a.History.Len() != 2 {
		t.Errorf("history length = %d, want 2", a.History.Len())
	}
	want := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	if !a.LastUpdated.Equal(want) {
		t.Errorf("lastUpdated = %v, want %v", a.LastUpdated, want)
	}
}

func TestEncodeBookStable(t *testing.T) {
	b, err := DecodeBook(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("DecodeBook: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatalf("EncodeBook: %v", err)
	}
	if got := buf.String(); got != sampleBook {
		t.Errorf("re-encode is not stable:\ngot:\n%s\nwant:\n%s", got, sampleBook)
	}
}

func TestDecodeBookSortsTransactions(t *testing.T) {
	shuffled := `{"record":"transaction","id":"later","date":"2024-03-01","type":"expense","category":"food","amount":10}
{"record":"transaction","id":"earlier","date":"2024-01-01","type":"expense","category":"food","amount":10}
`
	b, err := DecodeBook(strings.NewReader(shuffled))
	if err != nil {
		t.Fatalf("DecodeBook: %v", err)
	}
	if b.Transactions[0].ID != "earlier" {
		t.Error("transactions must come back in chronological order")
	}
}

func TestDecodeBookSkipsBlankLines(t *testing.T) {
	b, err := DecodeBook(strings.NewReader("\n" + sampleBook + "\n"))
	if err != nil {
		t.Fatalf("DecodeBook: %v", err)
	}
	if len(b.Transactions) != 2 {
		t.Errorf("decoded %d transactions, want 2", len(b.Transactions))
	}
}

func TestDecodeBookRejectsUnknownRecord(t *testing.T) {
	_, err := DecodeBook(strings.NewReader(`{"record":"budget","id":"x"}` + "\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown record") {
		t.Errorf("unknown record type must be rejected, got %v", err)
	}
}
