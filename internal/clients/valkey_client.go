package clients

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/spacesedan/slantscope/internal/models"
)

const VALKEY_DOCUMENT_KEY_PREFIX = "slantscope:document:"

type ValkeyConfig struct {
	Address  string
	Password string
	UseTLS   bool
	TTL      time.Duration
}

// ValkeyClient caches extracted documents so repeated requests for the same
// URL skip scraping and transcription.
type ValkeyClient struct {
	Client valkey.Client
	cfg    ValkeyConfig
	mu     sync.Mutex
}

func NewValkeyClient(cfg ValkeyConfig) (*ValkeyClient, error) {
	client, err := connectValkey(cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return &ValkeyClient{Client: client, cfg: cfg}, nil
}

func connectValkey(cfg ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}
	return client, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.cfg)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
	slog.Info("[ValkeyClient] Successfully reconnected to valkey")
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() {
	if vc != nil {
		vc.client().Close()
	}
}

// GetDocument returns the cached document of the given kind for a source, if
// any.
func (vc *ValkeyClient) GetDocument(ctx context.Context, kind, source string) (models.ExtractedDocument, bool, error) {
	var doc models.ExtractedDocument
	c := vc.client()

	res := vc.DoWithRetry(ctx, c.B().Get().Key(DocumentKey(kind, source)).Build(), 2)
	raw, err := res.ToString()
	if valkey.IsValkeyNil(err) {
		return doc, false, nil
	}
	if err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return doc, false, err
	}

	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return doc, false, fmt.Errorf("[ValkeyClient] corrupt cache entry: %w", err)
	}
	return doc, true, nil
}

func (vc *ValkeyClient) SetDocument(ctx context.Context, kind string, doc models.ExtractedDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	c := vc.client()
	var cmd valkey.Completed
	key := DocumentKey(kind, doc.Source)
	if seconds := int64(vc.cfg.TTL.Seconds()); seconds > 0 {
		cmd = c.B().Set().Key(key).Value(string(payload)).ExSeconds(seconds).Build()
	} else {
		cmd = c.B().Set().Key(key).Value(string(payload)).Build()
	}
	if err := vc.DoWithRetry(ctx, cmd, 2).Error(); err != nil {
		if isConnectionError(err) {
			vc.recreateClient()
		}
		return err
	}

	slog.Debug("[ValkeyClient] Cached document",
		slog.String("kind", kind),
		slog.String("source", doc.Source))
	return nil
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.client().Do(ctx, completed)
		if err := result.Error(); err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(100 * time.Millisecond)
	}

	return result
}

// DocumentKey namespaces by kind and hashes the source so arbitrary URLs make
// safe keys.
func DocumentKey(kind, source string) string {
	sum := sha256.Sum256([]byte(source))
	return VALKEY_DOCUMENT_KEY_PREFIX + kind + ":" + hex.EncodeToString(sum[:])
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
