package kafkaclient

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joeydtaylor/breathscope/pkg/internal/codec"
	"github.com/joeydtaylor/breathscope/pkg/internal/types"
	"github.com/joeydtaylor/breathscope/pkg/internal/utils"
	"github.com/segmentio/kafka-go"
)

// Publish writes one JSON event for report. A nil ctx falls back to the
// context the adapter was built with.
func (a *KafkaClient) Publish(ctx context.Context, report types.Report) error {
	if ctx == nil {
		ctx = a.ctx
	}

	a.configLock.RLock()
	producer, topic, keyTpl := a.producer, a.topic, a.keyTemplate
	headers := make(map[string]string, len(a.headers))
	for k, v := range a.headers {
		headers[k] = v
	}
	a.configLock.RUnlock()

	if producer == nil {
		return fmt.Errorf("kafkaclient: Publish requires a producer")
	}

	now := a.now()
	var body bytes.Buffer
	if err := codec.NewJSONEncoder[ReportEvent]().Encode(&body, NewReportEvent(report, now)); err != nil {
		return fmt.Errorf("kafkaclient: encode report: %w", err)
	}

	msg := kafka.Message{
		Key:     []byte(renderKey(keyTpl, report, now)),
		Value:   bytes.TrimRight(body.Bytes(), "\n"),
		Headers: renderHeaders(headers),
	}
	msg.Topic = messageTopic(producer, topic)

	start := time.Now()
	if err := producer.WriteMessages(ctx, msg); err != nil {
		a.NotifyLoggers(types.ErrorLevel, "Publish failed",
			"component", a.GetComponentMetadata(), "event", "Publish",
			"topic", msg.Topic, "report", report.ID, "error", err)
		return err
	}

	a.NotifyLoggers(types.InfoLevel, "Published",
		"component", a.GetComponentMetadata(), "event", "Publish",
		"topic", msg.Topic, "key", string(msg.Key), "bytes", len(msg.Value),
		"duration", time.Since(start))
	return nil
}

// messageTopic returns the per-message topic. kafka-go rejects messages that
// set Topic when the writer carries one.
func messageTopic(producer types.KafkaMessageWriter, topic string) string {
	if w, ok := producer.(*kafka.Writer); ok && strings.TrimSpace(w.Topic) != "" {
		return ""
	}
	return strings.TrimSpace(topic)
}

// renderKey fills {id}, {profile}, {primary} and the time tokens.
func renderKey(tpl string, r types.Report, now time.Time) string {
	repl := utils.TimeTokens(now)
	repl["{id}"] = r.ID
	repl["{profile}"] = string(r.Profile)
	repl["{primary}"] = r.Primary.Channel.String()
	return utils.RenderTemplate(tpl, repl)
}

// renderHeaders adds the content type and schema headers and sorts by key
// so messages are reproducible.
func renderHeaders(static map[string]string) []kafka.Header {
	all := map[string]string{
		"content-type": "application/json",
		"schema":       EventSchema,
	}
	for k, v := range static {
		all[k] = v
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		out = append(out, kafka.Header{Key: k, Value: []byte(all[k])})
	}
	return out
}
