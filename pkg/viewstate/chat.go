package viewstate

import (
	"slices"

	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatState struct {
	ProjectID      string
	ConversationID string
	// FindingID and Kind are set for conversations about a single finding.
	FindingID string
	Kind      findings.Kind
	Messages  []cybedefend.Message
	// Pending is true while a reply is awaited.
	Pending bool
	Error   string
}

func NewChatState(projectID string) ChatState {
	return ChatState{ProjectID: projectID}
}

func (s ChatState) Started() bool {
	return len(s.ConversationID) > 0
}

type ChatAction interface {
	reduceChat(ChatState) ChatState
}

type ConversationStarted struct {
	Conversation *cybedefend.Conversation
	FindingID    string
	Kind         findings.Kind
}

// MessageSent shows the user's message right away and marks a reply as pending.
type MessageSent struct {
	Content string
}

// RepliesReceived appends the messages of a reply. User messages are skipped, they were added
// by MessageSent.
type RepliesReceived struct {
	Conversation *cybedefend.Conversation
}

type ChatFailed struct {
	Err error
}

type ChatReset struct{}

func (a ConversationStarted) reduceChat(s ChatState) ChatState {
	s.FindingID = a.FindingID
	s.Kind = a.Kind
	s.Pending = false
	s.Error = ""
	s.Messages = nil
	if a.Conversation != nil {
		s.ConversationID = a.Conversation.ConversationID
		s.Messages = slices.Clip(slices.Clone(a.Conversation.Messages))
	}
	return s
}

func (a MessageSent) reduceChat(s ChatState) ChatState {
	s.Messages = append(slices.Clip(s.Messages), cybedefend.Message{Role: RoleUser, Content: a.Content})
	s.Pending = true
	s.Error = ""
	return s
}

func (a RepliesReceived) reduceChat(s ChatState) ChatState {
	s.Pending = false
	if a.Conversation == nil {
		return s
	}
	if len(a.Conversation.ConversationID) > 0 {
		s.ConversationID = a.Conversation.ConversationID
	}
	messages := slices.Clip(s.Messages)
	for _, message := range a.Conversation.Messages {
		if message.Role != RoleUser {
			messages = append(messages, message)
		}
	}
	s.Messages = slices.Clip(messages)
	return s
}

func (a ChatFailed) reduceChat(s ChatState) ChatState {
	s.Pending = false
	if a.Err != nil {
		s.Error = a.Err.Error()
	}
	return s
}

func (ChatReset) reduceChat(s ChatState) ChatState {
	return NewChatState(s.ProjectID)
}

func ReduceChat(state ChatState, action ChatAction) ChatState {
	if action == nil {
		return state
	}
	return action.reduceChat(state)
}

func NewChatStore(projectID string) *Store[ChatState, ChatAction] {
	return NewStore[ChatState, ChatAction](NewChatState(projectID), ReduceChat)
}
