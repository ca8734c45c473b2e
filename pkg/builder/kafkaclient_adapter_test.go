package builder

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	kafka "github.com/segmentio/kafka-go"
)

func TestNewKafkaGoWriter(t *testing.T) {
	w := NewKafkaGoWriter([]string{"localhost:9092"}, "breath.reports",
		KafkaGoWriterWithLeastBytes(),
		KafkaGoWriterWithRequiredAcks("leader"),
	)
	defer w.Close()

	if w.Topic != "breath.reports" {
		t.Fatalf("unexpected topic %q", w.Topic)
	}
	if _, ok := w.Balancer.(*kafka.LeastBytes); !ok {
		t.Fatalf("expected LeastBytes balancer, got %T", w.Balancer)
	}
	if w.RequiredAcks != kafka.RequireOne {
		t.Fatalf("expected RequireOne, got %v", w.RequiredAcks)
	}
}

func TestSASLSCRAM(t *testing.T) {
	for _, mech := range []string{"", "scram_sha_256", "SCRAM-SHA-512"} {
		if _, err := SASLSCRAM("user", "pass", mech); err != nil {
			t.Fatalf("mechanism %q: %v", mech, err)
		}
	}
	if _, err := SASLSCRAM("user", "pass", "PLAIN"); err == nil {
		t.Fatalf("expected error for unsupported mechanism")
	}
}

func TestTLSFromCAFilesStrict(t *testing.T) {
	dir := t.TempDir()
	if _, err := TLSFromCAFilesStrict([]string{filepath.Join(dir, "missing.pem")}, ""); err == nil {
		t.Fatalf("expected error when no CA file exists")
	}

	bad := filepath.Join(dir, "bad.pem")
	if err := os.WriteFile(bad, []byte("not a cert"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := TLSFromCAFilesStrict([]string{bad}, "broker"); err == nil {
		t.Fatalf("expected error for invalid PEM")
	}
}

func writeTestCA(t *testing.T) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "breathscope-test-ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("CreateCertificate: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600); err != nil {
		t.Fatalf("write CA: %v", err)
	}
	return path
}

func TestKafkaPublishConfigFromEnv(t *testing.T) {
	t.Setenv("BREATH_KAFKA_BROKERS", "k1:9093, k2:9093,")
	t.Setenv("BREATH_KAFKA_CA", "/missing.pem,/etc/kafka/ca.pem")
	t.Setenv("BREATH_KAFKA_SASL_USER", "breath")
	t.Setenv("BREATH_KAFKA_BATCH_TIMEOUT", "10ms")
	t.Setenv("BREATH_KAFKA_BALANCER", "least-bytes")

	cfg := KafkaPublishConfigFromEnv("")
	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "k2:9093" {
		t.Fatalf("unexpected brokers %v", cfg.Brokers)
	}
	if len(cfg.CAFiles) != 2 || cfg.BatchTimeout != 10*time.Millisecond {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Topic != "breath.reports" || !cfg.Secure() || !cfg.LeastBytes {
		t.Fatalf("expected default topic and secure config, got %+v", cfg)
	}
}

func TestNewKafkaGoWriterFromConfig_Plain(t *testing.T) {
	w, err := NewKafkaGoWriterFromConfig(KafkaPublishConfig{
		Brokers:      []string{"localhost:9092"},
		Topic:        "breath.reports",
		BatchTimeout: 5 * time.Millisecond,
		RequiredAcks: "none",
		LeastBytes:   true,
	})
	if err != nil {
		t.Fatalf("NewKafkaGoWriterFromConfig error: %v", err)
	}
	defer w.Close()

	if w.Transport != nil {
		t.Fatalf("plain writer should use the default transport")
	}
	if w.BatchTimeout != 5*time.Millisecond || w.RequiredAcks != kafka.RequireNone {
		t.Fatalf("options not applied: timeout=%v acks=%v", w.BatchTimeout, w.RequiredAcks)
	}
	if _, ok := w.Balancer.(*kafka.LeastBytes); !ok {
		t.Fatalf("expected LeastBytes balancer, got %T", w.Balancer)
	}
}

func TestNewKafkaGoWriterFromConfig_Secure(t *testing.T) {
	ca := writeTestCA(t)
	w, err := NewKafkaGoWriterFromConfig(KafkaPublishConfig{
		Brokers:    []string{"broker:9093"},
		Topic:      "breath.reports",
		ClientID:   "breathscope-test",
		CAFiles:    []string{filepath.Join(t.TempDir(), "missing.pem"), ca},
		ServerName: "broker",
		SASLUser:   "breath",
		SASLPass:   "secret",
		SASLMech:   "SCRAM-SHA-512",
	})
	if err != nil {
		t.Fatalf("NewKafkaGoWriterFromConfig error: %v", err)
	}
	defer w.Close()

	tr, ok := w.Transport.(*kafka.Transport)
	if !ok {
		t.Fatalf("expected *kafka.Transport, got %T", w.Transport)
	}
	if tr.TLS == nil || tr.TLS.ServerName != "broker" || tr.TLS.RootCAs == nil {
		t.Fatalf("TLS not configured: %+v", tr.TLS)
	}
	if tr.SASL == nil || tr.SASL.Name() != "SCRAM-SHA-512" {
		t.Fatalf("SASL not configured: %v", tr.SASL)
	}
	if tr.ClientID != "breathscope-test" {
		t.Fatalf("unexpected client id %q", tr.ClientID)
	}
	if w.BatchTimeout != 50*time.Millisecond {
		t.Fatalf("default batch timeout changed: %v", w.BatchTimeout)
	}
}

func TestNewKafkaGoWriterFromConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  KafkaPublishConfig
	}{
		{"no brokers", KafkaPublishConfig{Topic: "t"}},
		{"no topic", KafkaPublishConfig{Brokers: []string{"b:9092"}}},
		{"missing CA", KafkaPublishConfig{Brokers: []string{"b:9092"}, Topic: "t", CAFiles: []string{"/nonexistent/ca.pem"}}},
		{"bad mechanism", KafkaPublishConfig{Brokers: []string{"b:9092"}, Topic: "t", SASLUser: "u", SASLMech: "PLAIN"}},
	}
	for _, tt := range tests {
		if _, err := NewKafkaGoWriterFromConfig(tt.cfg); err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
	}
}
