package completion

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/scout/internal/models"
)

var dataPrefix = []byte("data: ")

// turnResult is the outcome of one round-trip: either text, or a single tool call.
type turnResult struct {
	text string
	call *models.Call
}

// toolCallBuilder assembles a tool call which may be streamed over several chunks.
type toolCallBuilder struct {
	name string
	id   string
	// Arguments are streamed as a stringified json, chunk by chunk
	args strings.Builder
}

func (o *Ollama) roundTrip(ctx context.Context, msgs []models.Message, tools []wireTool) (turnResult, error) {
	httpReq, err := o.createRequest(ctx, msgs, tools)
	if err != nil {
		return turnResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := o.client.Do(httpReq)
	if err != nil {
		if isUnreachable(err) {
			return turnResult{}, fmt.Errorf("%w: %w", ErrBackendUnreachable, err)
		}
		return turnResult{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return turnResult{}, statusError(res)
	}
	return o.handleStreamResponse(ctx, res.Body)
}

func (o *Ollama) createRequest(ctx context.Context, msgs []models.Message, tools []wireTool) (*http.Request, error) {
	reqData := req{
		Model:       o.Model,
		Messages:    toWire(msgs),
		Stream:      true,
		MaxTokens:   o.MaxTokens,
		Temperature: &o.Temperature,
		TopP:        &o.TopP,
	}
	if len(tools) > 0 {
		reqData.Tools = tools
		reqData.ToolChoice = o.toolChoice
	}
	if o.debug {
		ancli.PrintOK(fmt.Sprintf("ollama request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %v", o.apiKey))
	httpReq.Header.Set("Accept", "text/event-stream")
	return httpReq, nil
}

// handleStreamResponse reads the server sent events until the stream is done,
// accumulating either the text or the tool call of the turn. Tool calls are
// preferred if the model emits both.
func (o *Ollama) handleStreamResponse(ctx context.Context, body io.Reader) (turnResult, error) {
	br := bufio.NewReader(body)
	var text strings.Builder
	var tc *toolCallBuilder
	for {
		if ctx.Err() != nil {
			return turnResult{}, ctx.Err()
		}
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			done, chunkErr := o.handleStreamChunk(line, &text, &tc)
			if chunkErr != nil {
				return turnResult{}, chunkErr
			}
			if done {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return turnResult{}, fmt.Errorf("failed to read line: %w", err)
		}
	}
	if tc != nil && tc.name != "" {
		call, err := tc.build()
		if err != nil {
			return turnResult{}, err
		}
		return turnResult{call: &call}, nil
	}
	return turnResult{text: text.String()}, nil
}

// handleStreamChunk processes one line of the stream. Returns true once the
// stream signals that it's done.
func (o *Ollama) handleStreamChunk(line []byte, text *strings.Builder, tc **toolCallBuilder) (bool, error) {
	line = bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(line), dataPrefix))
	if len(line) == 0 {
		return false, nil
	}
	if string(line) == "[DONE]" {
		return true, nil
	}
	if o.debug {
		ancli.PrintOK(fmt.Sprintf("token: %v\n", string(line)))
	}
	var chunk chatCompletionChunk
	err := json.Unmarshal(line, &chunk)
	if err != nil {
		if o.debug {
			// Keep-alives and comments are expected to fail
			ancli.PrintWarn(fmt.Sprintf("failed to unmarshal token: %v, err: %v\n", string(line), err))
		}
		return false, nil
	}
	if chunk.Error != nil {
		return false, fmt.Errorf("stream error: %v", chunk.Error.Message)
	}
	// Parallel tool calls aren't requested, so only the first choice matters
	if len(chunk.Choices) == 0 {
		return false, nil
	}
	d := chunk.Choices[0].Delta
	if len(d.ToolCalls) > 0 {
		if *tc == nil {
			*tc = &toolCallBuilder{}
		}
		first := d.ToolCalls[0]
		// Function name is only shown in first chunk of a functions call
		if first.Function.Name != "" {
			(*tc).name = first.Function.Name
		}
		if first.ID != "" {
			(*tc).id = first.ID
		}
		(*tc).args.WriteString(first.Function.Arguments)
		return false, nil
	}
	text.WriteString(d.Content)
	return false, nil
}

func (b *toolCallBuilder) build() (models.Call, error) {
	args := strings.TrimSpace(b.args.String())
	if args == "" {
		args = "{}"
	}
	var input models.Input
	err := json.Unmarshal([]byte(args), &input)
	if err != nil {
		return models.Call{}, fmt.Errorf("failed to unmarshal argument string: %w, argsString: %v", err, args)
	}
	call := models.Call{
		ID:     b.id,
		Name:   b.name,
		Type:   "function",
		Inputs: &input,
		Function: models.Specification{
			Name:      b.name,
			Arguments: args,
		},
	}
	return call, nil
}

func isUnreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// statusError turns a non 200 response into an error, extracting the
// message from the OpenAI styled error body if there is one.
func statusError(res *http.Response) error {
	body, _ := io.ReadAll(res.Body)
	msg := strings.TrimSpace(string(body))
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && eb.Error.Message != "" {
		msg = eb.Error.Message
	}
	if res.StatusCode == http.StatusNotFound && strings.Contains(strings.ToLower(msg), "model") {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, msg)
	}
	return fmt.Errorf("unexpected status code: %v, body: %v", res.Status, msg)
}
