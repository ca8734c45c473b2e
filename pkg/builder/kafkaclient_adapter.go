package builder

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/scram"

	kafkaClientAdapter "github.com/joeydtaylor/breathscope/pkg/internal/adapter/kafkaclient"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
)

type (
	KafkaClientAdapter = types.KafkaClientAdapter
	KafkaWriterConfig  = types.KafkaWriterConfig
	ReportEvent        = kafkaClientAdapter.ReportEvent
)

////////////////////////
// Adapter constructor +
////////////////////////

// NewKafkaClientAdapter creates a report publisher.
func NewKafkaClientAdapter(ctx context.Context, options ...types.Option[types.KafkaClientAdapter]) types.KafkaClientAdapter {
	return kafkaClientAdapter.NewKafkaClientAdapter(ctx, options...)
}

// KafkaClientAdapterWithKafkaGoWriter injects a kafka-go Writer as the producer.
func KafkaClientAdapterWithKafkaGoWriter(w *kafka.Writer) types.Option[types.KafkaClientAdapter] {
	return kafkaClientAdapter.WithProducer(w)
}

func KafkaClientAdapterWithWriterConfig(cfg types.KafkaWriterConfig) types.Option[types.KafkaClientAdapter] {
	return kafkaClientAdapter.WithWriterConfig(cfg)
}

func KafkaClientAdapterWithWriterTopic(topic string) types.Option[types.KafkaClientAdapter] {
	return kafkaClientAdapter.WithWriterConfig(types.KafkaWriterConfig{Topic: topic})
}

// KafkaClientAdapterWithWriterKeyTemplate sets the message key, e.g. "{profile}/{id}".
func KafkaClientAdapterWithWriterKeyTemplate(tmpl string) types.Option[types.KafkaClientAdapter] {
	return kafkaClientAdapter.WithWriterConfig(types.KafkaWriterConfig{KeyTemplate: tmpl})
}

func KafkaClientAdapterWithWriterHeaders(hdrs map[string]string) types.Option[types.KafkaClientAdapter] {
	cp := make(map[string]string, len(hdrs))
	for k, v := range hdrs {
		cp[k] = v
	}
	return kafkaClientAdapter.WithWriterConfig(types.KafkaWriterConfig{Headers: cp})
}

func KafkaClientAdapterWithLogger(l ...types.Logger) types.Option[types.KafkaClientAdapter] {
	return kafkaClientAdapter.WithLogger(l...)
}

func KafkaClientAdapterWithComponentMetadata(name string, id string) types.Option[types.KafkaClientAdapter] {
	return kafkaClientAdapter.WithComponentMetadata(name, id)
}

// ---- kafka-go Writer convenience ----

type KafkaGoWriterOption func(*kafka.Writer)

// NewKafkaGoWriter builds a kafka-go Writer for the given brokers/topic.
// Reports are small and infrequent, so batching is kept short.
func NewKafkaGoWriter(brokers []string, topic string, opts ...KafkaGoWriterOption) *kafka.Writer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		BatchSize:              1,
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func KafkaGoWriterWithLeastBytes() KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Balancer = &kafka.LeastBytes{} }
}
func KafkaGoWriterWithBatchTimeout(d time.Duration) KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.BatchTimeout = d }
}
func KafkaGoWriterWithRequiredAcks(mode string) KafkaGoWriterOption {
	return func(w *kafka.Writer) {
		switch strings.ToLower(mode) {
		case "0", "none":
			w.RequiredAcks = kafka.RequireNone
		case "1", "leader":
			w.RequiredAcks = kafka.RequireOne
		default: // "all", "-1"
			w.RequiredAcks = kafka.RequireAll
		}
	}
}
func KafkaGoWriterWithTransport(t *kafka.Transport) KafkaGoWriterOption {
	return func(w *kafka.Writer) { w.Transport = t }
}

// -------------------------------------------------
// Security helpers (TLS + SASL)
// -------------------------------------------------

// TLSFromCAFilesStrict loads a strict TLS config (Min TLS1.2) using the first
// existing file path from candidates. If serverName != "", it is set for SNI
// and hostname verification.
func TLSFromCAFilesStrict(candidates []string, serverName string) (*tls.Config, error) {
	var picked string
	for _, p := range candidates {
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			picked = p
			break
		}
	}
	if picked == "" {
		return nil, fmt.Errorf("no CA file found in candidates: %v", candidates)
	}
	pem, err := os.ReadFile(filepath.Clean(picked))
	if err != nil {
		return nil, fmt.Errorf("read CA: %w", err)
	}
	cp := x509.NewCertPool()
	if !cp.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("invalid CA PEM at %s", picked)
	}
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    cp,
	}
	if serverName != "" {
		cfg.ServerName = serverName
	}
	return cfg, nil
}

// SASLSCRAM returns a sasl.Mechanism for kafka-go from a common name.
// Supported: "SCRAM-SHA-256" (default), "SCRAM-SHA-512".
func SASLSCRAM(user, pass, mech string) (sasl.Mechanism, error) {
	switch strings.ToUpper(strings.ReplaceAll(mech, "_", "-")) {
	case "", "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, user, pass)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, user, pass)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", mech)
	}
}

// NewKafkaGoTransport builds a kafka-go Transport with optional TLS/SASL/ClientID.
func NewKafkaGoTransport(tlsCfg *tls.Config, mech sasl.Mechanism, clientID string) *kafka.Transport {
	return &kafka.Transport{
		TLS:      tlsCfg,
		SASL:     mech,
		ClientID: clientID,
	}
}

// NewKafkaGoWriterSecure: NewKafkaGoWriter + Transport(TLS/SASL) in one call.
func NewKafkaGoWriterSecure(brokers []string, topic string, tlsCfg *tls.Config, mech sasl.Mechanism, clientID string, opts ...KafkaGoWriterOption) *kafka.Writer {
	transport := NewKafkaGoTransport(tlsCfg, mech, clientID)
	opts = append([]KafkaGoWriterOption{KafkaGoWriterWithTransport(transport)}, opts...)
	return NewKafkaGoWriter(brokers, topic, opts...)
}

// KafkaPublishConfig collects the producer settings for report publishing.
type KafkaPublishConfig struct {
	Brokers      []string
	Topic        string
	ClientID     string
	CAFiles      []string // first existing file wins
	ServerName   string
	SASLUser     string
	SASLPass     string
	SASLMech     string
	BatchTimeout time.Duration
	RequiredAcks string
	LeastBytes   bool // balance by bytes instead of hashing the key
}

// KafkaPublishConfigFromEnv reads <prefix>BROKERS, TOPIC, CLIENT_ID, CA
// (comma separated candidates), SERVER_NAME, SASL_USER, SASL_PASS,
// SASL_MECHANISM, BATCH_TIMEOUT, ACKS and BALANCER ("hash" or "least-bytes"). An empty prefix means "BREATH_KAFKA_".
func KafkaPublishConfigFromEnv(prefix string) KafkaPublishConfig {
	if prefix == "" {
		prefix = "BREATH_KAFKA_"
	}
	cfg := KafkaPublishConfig{
		Brokers:      splitCSV(EnvOr(prefix+"BROKERS", "")),
		Topic:        EnvOr(prefix+"TOPIC", "breath.reports"),
		ClientID:     EnvOr(prefix+"CLIENT_ID", "breathscope"),
		CAFiles:      splitCSV(EnvOr(prefix+"CA", "")),
		ServerName:   EnvOr(prefix+"SERVER_NAME", ""),
		SASLUser:     EnvOr(prefix+"SASL_USER", ""),
		SASLPass:     EnvOr(prefix+"SASL_PASS", ""),
		SASLMech:     EnvOr(prefix+"SASL_MECHANISM", "SCRAM-SHA-256"),
		RequiredAcks: EnvOr(prefix+"ACKS", "all"),
		LeastBytes:   strings.EqualFold(EnvOr(prefix+"BALANCER", "hash"), "least-bytes"),
	}
	if d, err := time.ParseDuration(EnvOr(prefix+"BATCH_TIMEOUT", "")); err == nil {
		cfg.BatchTimeout = d
	}
	return cfg
}

// Secure reports whether the config asks for TLS or SASL.
func (c KafkaPublishConfig) Secure() bool {
	return len(c.CAFiles) > 0 || c.SASLUser != ""
}

// NewKafkaGoWriterFromConfig builds a plain writer, or a secure one when CA
// files or SASL credentials are configured.
func NewKafkaGoWriterFromConfig(cfg KafkaPublishConfig) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	opts := []KafkaGoWriterOption{KafkaGoWriterWithRequiredAcks(cfg.RequiredAcks)}
	if cfg.BatchTimeout > 0 {
		opts = append(opts, KafkaGoWriterWithBatchTimeout(cfg.BatchTimeout))
	}
	if cfg.LeastBytes {
		opts = append(opts, KafkaGoWriterWithLeastBytes())
	}
	if !cfg.Secure() {
		return NewKafkaGoWriter(cfg.Brokers, cfg.Topic, opts...), nil
	}

	var tlsCfg *tls.Config
	if len(cfg.CAFiles) > 0 {
		var err error
		if tlsCfg, err = TLSFromCAFilesStrict(cfg.CAFiles, cfg.ServerName); err != nil {
			return nil, err
		}
	}
	var mech sasl.Mechanism
	if cfg.SASLUser != "" {
		var err error
		if mech, err = SASLSCRAM(cfg.SASLUser, cfg.SASLPass, cfg.SASLMech); err != nil {
			return nil, err
		}
	}
	return NewKafkaGoWriterSecure(cfg.Brokers, cfg.Topic, tlsCfg, mech, cfg.ClientID, opts...), nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
