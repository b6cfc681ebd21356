package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Presigner подписывает write-URL для локального файлового шлюза HMAC-ом.
type Presigner struct {
	baseURL string
	secret  []byte
	ttl     time.Duration
}

func NewPresigner(baseURL, secret string, ttl time.Duration) *Presigner {
	return &Presigner{baseURL: baseURL, secret: []byte(secret), ttl: ttl}
}

func (p *Presigner) IssuePresignedUpload(ctx context.Context, bucket string) (string, uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return "", uuid.Nil, err
	}

	objectID := uuid.New()
	expires := time.Now().Add(p.ttl).Unix()

	url := fmt.Sprintf("%s/%s/%s?expires=%d&signature=%s",
		p.baseURL, bucket, objectID, expires, p.sign(bucket, objectID, expires))

	return url, objectID, nil
}

// VerifyUpload проверяет подпись и срок действия ссылки на стороне шлюза
func (p *Presigner) VerifyUpload(bucket string, objectID uuid.UUID, expires int64, signature string) bool {
	if time.Now().Unix() > expires {
		return false
	}
	return hmac.Equal([]byte(signature), []byte(p.sign(bucket, objectID, expires)))
}

func (p *Presigner) sign(bucket string, objectID uuid.UUID, expires int64) string {
	mac := hmac.New(sha256.New, p.secret)
	mac.Write([]byte(bucket + "/" + objectID.String() + "/" + strconv.FormatInt(expires, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
