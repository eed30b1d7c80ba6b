package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"example.com/travel-genie/backend/internal/models"
)

// Chat answers a conversational turn about the current trip. When the user
// asks for a change the model embeds the full revised itinerary in a fenced
// json block; the reply carries it as a proposal and nothing is applied here.
func (s *Service) Chat(ctx context.Context, itinerary *models.Itinerary, history []models.ChatMessage, userText string, lang models.Language) (ChatReply, []byte, error) {
	system, err := buildChatSystemPrompt(itinerary, lang)
	if err != nil {
		return ChatReply{}, nil, err
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: system})
	for _, msg := range history {
		role := "user"
		if msg.Role == models.ChatRoleModel {
			role = "assistant"
		}
		messages = append(messages, Message{Role: role, Content: msg.Content})
	}
	messages = append(messages, Message{Role: "user", Content: userText})

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return ChatReply{}, raw, err
	}

	reply := ChatReply{Text: strings.TrimSpace(content)}
	if proposal, rest, ok := ExtractProposal(content); ok {
		reply.Proposal = proposal
		reply.Text = rest
	}

	return reply, raw, nil
}

func buildChatSystemPrompt(itinerary *models.Itinerary, lang models.Language) (string, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a travel assistant helping with an already planned trip. Always answer in %s.\n", languageName(lang))

	if itinerary != nil {
		payload, err := json.Marshal(itinerary)
		if err != nil {
			return "", err
		}
		sb.WriteString("The current itinerary is:\n")
		sb.Write(payload)
		sb.WriteString("\n")
	} else {
		sb.WriteString("No itinerary has been generated yet.\n")
	}

	sb.WriteString(`
When the user asks you to change the plan, reply with a short explanation
followed by the COMPLETE revised itinerary as a single fenced block:

` + "```json" + `
{ ...full itinerary object, same schema as the current one... }
` + "```" + `

Include the fenced block only when proposing a change. For questions, answer
in plain text without any code block.`)

	return sb.String(), nil
}

// ExtractProposal pulls a fenced json itinerary out of a chat reply. It
// returns the parsed proposal, the reply text with the block removed, and
// whether a valid proposal was found. A block that fails to parse or
// validate is ignored and the text is returned untouched.
func ExtractProposal(content string) (*models.Itinerary, string, bool) {
	start := strings.Index(content, "```json")
	if start == -1 {
		start = strings.Index(content, "```")
	}
	if start == -1 {
		return nil, strings.TrimSpace(content), false
	}

	block := content[start:]
	payload := extractJSON(block)
	if payload == "" {
		return nil, strings.TrimSpace(content), false
	}

	var itinerary models.Itinerary
	if err := json.Unmarshal([]byte(payload), &itinerary); err != nil {
		return nil, strings.TrimSpace(content), false
	}

	normalizeItinerary(&itinerary)
	if err := validateItinerary(itinerary); err != nil {
		return nil, strings.TrimSpace(content), false
	}

	rest := content[:start]
	if end := strings.Index(block[3:], "```"); end >= 0 {
		rest += block[3+end+3:]
	}

	return &itinerary, strings.TrimSpace(rest), true
}
