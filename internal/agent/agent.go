// ABOUTME: Console conversational driver standing in for the realtime audio room
// ABOUTME: Runs a chat loop and executes model tool calls through the function registry
package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/BigLebowskii/ai-voice-assistant/internal/functions"
)

// completer is the slice of the LLM client the agent needs; narrowed for
// testability.
type completer interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error)
}

// Agent drives one conversation for one user. Tool calls run serially,
// in the order the model requests them.
type Agent struct {
	llm      completer
	registry *functions.Registry
	userID   string
	in       io.Reader
	out      io.Writer
	history  []openai.ChatCompletionMessage
	tools    []openai.Tool
}

// New creates an agent session bound to stdin/stdout.
func New(llm completer, registry *functions.Registry, userID string) *Agent {
	return &Agent{
		llm:      llm,
		registry: registry,
		userID:   userID,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// Run reads user turns until EOF, answering each one. The model may call
// any number of tools before producing its reply.
func (a *Agent) Run(ctx context.Context) error {
	a.history = []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt()},
	}
	a.tools = toolsFromCatalog(a.registry.Catalog())

	fmt.Fprintln(a.out, WelcomeMessage)

	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		a.history = append(a.history, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: line,
		})
		reply, err := a.converse(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, reply)
	}
	return scanner.Err()
}

// converse runs completions until the model stops requesting tools.
func (a *Agent) converse(ctx context.Context) (string, error) {
	for {
		message, err := a.llm.Complete(ctx, a.history, a.tools)
		if err != nil {
			return "", err
		}
		a.history = append(a.history, message)

		if len(message.ToolCalls) == 0 {
			return message.Content, nil
		}
		for _, call := range message.ToolCalls {
			a.history = append(a.history, a.executeToolCall(ctx, call))
		}
	}
}

// executeToolCall runs one registry operation and shapes the outcome as a
// tool message. Errors become error payloads so the model can explain the
// failure instead of the session dying.
func (a *Agent) executeToolCall(ctx context.Context, call openai.ToolCall) openai.ChatCompletionMessage {
	result, err := a.registry.Call(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
	if err != nil {
		log.Printf("tool %s failed: %v", call.Function.Name, err)
		result = functions.ErrorPayload{Error: err.Error()}
	}

	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte(`{"error": "failed to encode tool result"}`)
	}
	return openai.ChatCompletionMessage{
		Role:       openai.ChatMessageRoleTool,
		ToolCallID: call.ID,
		Content:    string(payload),
	}
}

func (a *Agent) systemPrompt() string {
	return fmt.Sprintf("%s\n\nThe current user's user_id is %q. Use it for every function that needs one.", Instruction, a.userID)
}

// toolsFromCatalog converts registry specs into OpenAI function tools.
func toolsFromCatalog(specs []functions.Spec) []openai.Tool {
	tools := make([]openai.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters: map[string]any{
					"type":       "object",
					"properties": spec.Parameters.Properties,
					"required":   spec.Parameters.Required,
				},
			},
		})
	}
	return tools
}
