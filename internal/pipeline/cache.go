package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
	"github.com/jgiraldoc/receipt-parser/internal/ocr"
)

// processOutcome is the cached pair for one distinct OCR result.
type processOutcome struct {
	tx         *domain.BankTransaction
	validation domain.TransactionValidation
}

// CachedProcessor memoizes Process results so the same annotation is never
// parsed twice within the TTL. Cache hits return the stored transaction,
// including its original ID and CreatedAt. Transactions are never mutated
// after build, so sharing the pointer across callers is safe.
type CachedProcessor struct {
	cache *gocache.Cache
}

// NewCachedProcessor creates a processor whose results expire after ttl and
// are swept every cleanupInterval.
func NewCachedProcessor(ttl, cleanupInterval time.Duration) *CachedProcessor {
	return &CachedProcessor{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Process returns the cached outcome for res, running the extraction core on
// a miss.
func (p *CachedProcessor) Process(res ocr.Result) (*domain.BankTransaction, domain.TransactionValidation) {
	key := cacheKey(res)
	if v, ok := p.cache.Get(key); ok {
		out := v.(processOutcome)
		return out.tx, out.validation
	}

	tx, validation := Process(res)
	p.cache.Set(key, processOutcome{tx: tx, validation: validation}, gocache.DefaultExpiration)
	return tx, validation
}

// cacheKey derives a stable key from everything extraction looks at: the
// text, the logo labels and the document labels.
func cacheKey(res ocr.Result) string {
	h := sha256.New()
	io.WriteString(h, res.Text)
	for _, l := range res.LogoLabels {
		h.Write([]byte{0})
		io.WriteString(h, l)
	}
	h.Write([]byte{1})
	for _, l := range res.Labels {
		h.Write([]byte{0})
		io.WriteString(h, l)
	}
	return hex.EncodeToString(h.Sum(nil))
}
