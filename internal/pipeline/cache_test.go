package pipeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/jgiraldoc/receipt-parser/internal/ocr"
)

func TestCachedProcessorReturnsCachedOutcome(t *testing.T) {
	p := NewCachedProcessor(time.Minute, time.Minute)
	res := ocr.Result{
		Text:   "Compraste COP51.558,00 en EXITO con T.Cred *9095",
		Labels: []string{"Receipt"},
	}

	tx1, v1 := p.Process(res)
	tx2, v2 := p.Process(res)

	if tx1 != tx2 {
		t.Error("CachedProcessor.Process() built a new transaction for a cached result")
	}
	if tx1.ID != tx2.ID || !tx1.CreatedAt.Equal(tx2.CreatedAt) {
		t.Error("cached transaction must keep its original identity")
	}
	if !reflect.DeepEqual(v1, v2) {
		t.Errorf("cached verdict differs: %+v vs %+v", v1, v2)
	}
}

func TestCachedProcessorKeysOnLabels(t *testing.T) {
	p := NewCachedProcessor(time.Minute, time.Minute)

	// Same text, but one result carries the bank as a logo. The logo drives
	// bank detection, so these must not share a cache entry.
	withLogo, _ := p.Process(ocr.Result{Text: "$200.000", LogoLabels: []string{"Bancolombia"}})
	withLabel, _ := p.Process(ocr.Result{Text: "$200.000", Labels: []string{"Bancolombia"}})

	if withLogo == withLabel {
		t.Fatal("logo and document labels collided in the cache key")
	}
	if len(withLogo.Banks) != 1 {
		t.Errorf("logo result banks = %v, want [Bancolombia]", withLogo.Banks)
	}
	if len(withLabel.Banks) != 0 {
		t.Errorf("label result banks = %v, want none", withLabel.Banks)
	}
}

func TestCachedProcessorExpires(t *testing.T) {
	p := NewCachedProcessor(time.Millisecond, 10*time.Millisecond)
	res := ocr.Result{Text: "$100"}

	tx1, _ := p.Process(res)
	time.Sleep(20 * time.Millisecond)
	tx2, _ := p.Process(res)

	if tx1 == tx2 {
		t.Error("CachedProcessor.Process() returned an expired entry")
	}
}
