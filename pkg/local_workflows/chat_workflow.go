package localworkflows

import (
	"errors"
	"io"
	"strings"

	"github.com/CybeDefend/cybedefend-vscode-sub000/internal/presenters"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/configuration"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/errorcatalog"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/content_type"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/local_workflows/json_schemas"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/ui"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/viewstate"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/workflow"
)

const chatPrompt = "You"

var chatExitCommands = []string{"exit", "quit", "/exit"}

type chatFlags struct {
	ProjectId workflow.Flag[string]
	FindingId workflow.Flag[string]
	Type      workflow.Flag[string]
	Message   workflow.Flag[string]
}

func (f chatFlags) GetFlags() workflow.Flags {
	return workflow.Flags{f.ProjectId, f.FindingId, f.Type, f.Message}
}

var (
	Chat = &chatWorkflow{
		Workflow: &workflow.Workflow{
			Name:     "chat",
			TypeName: "conversation",
			Visible:  true,
			Flags: chatFlags{
				ProjectId: projectIdFlagDef,
				FindingId: workflow.Flag[string]{Name: findingIdFlag, Usage: "Finding to talk about"},
				Type:      findingTypeFlag,
				Message: workflow.Flag[string]{
					Name:      "message",
					Shorthand: "m",
					Usage:     "Send a single message instead of starting an interactive session",
				},
			},
		},
		newClient: NewClient,
	}

	WORKFLOWID_CHAT workflow.Identifier = Chat.Identifier()
)

func InitChatWorkflow(engine workflow.Engine) error {
	return workflow.Register(Chat, engine)
}

type chatWorkflow struct {
	*workflow.Workflow
	newClient ClientFactory
}

type chatSession struct {
	invocation workflow.InvocationContext
	client     cybedefend.Client
	store      *viewstate.Store[viewstate.ChatState, viewstate.ChatAction]
}

// Entrypoint starts a conversation with the security assistant, optionally about one finding. With
// --message a single exchange is returned as a conversation document, otherwise messages are read
// from the terminal until an exit command or the end of input.
func (w *chatWorkflow) Entrypoint(invocation workflow.InvocationContext, _ []workflow.Data) ([]workflow.Data, error) {
	config := invocation.GetConfiguration()
	logger := w.Logger(invocation)
	flags := w.Workflow.Flags.(chatFlags)

	projectId, err := resolveProjectId(config, config.GetString(configuration.WORKING_DIRECTORY), logger)
	if err != nil {
		return nil, err
	}

	request := cybedefend.StartConversationRequest{
		ProjectID: projectId,
		FindingID: strings.TrimSpace(flags.FindingId.Value(config)),
	}
	if len(request.FindingID) > 0 {
		if request.Kind, err = parseKindFlag(flags.Type.Value(config)); err != nil {
			return nil, err
		}
	}

	session := &chatSession{
		invocation: invocation,
		client:     w.newClient(invocation),
		store:      viewstate.NewChatStore(projectId),
	}

	if err = session.start(request); err != nil {
		return nil, err
	}

	message := strings.TrimSpace(flags.Message.Value(config))
	if len(message) > 0 {
		if err = session.send(message); err != nil {
			return nil, err
		}
		data, jsonErr := newJsonData(w.TypeIdentifier(), content_type.CONVERSATION, "", json_schemas.NewConversationDocument(session.store.State()))
		if jsonErr != nil {
			return nil, jsonErr
		}
		return []workflow.Data{data}, nil
	}

	logger.Debug().Str("conversationId", session.store.State().ConversationID).Msg("Starting interactive chat")
	return nil, session.interactive(invocation.GetUserInterface())
}

func (s *chatSession) start(request cybedefend.StartConversationRequest) error {
	conversation, err := s.client.StartConversation(s.invocation.Context(), request)
	if err != nil {
		s.store.Dispatch(viewstate.ChatFailed{Err: err})
		return err
	}

	s.store.Dispatch(viewstate.ConversationStarted{
		Conversation: conversation,
		FindingID:    request.FindingID,
		Kind:         request.Kind,
	})
	return nil
}

func (s *chatSession) send(message string) error {
	state := s.store.Dispatch(viewstate.MessageSent{Content: message})

	reply, err := s.client.ContinueConversation(s.invocation.Context(), cybedefend.ContinueConversationRequest{
		ProjectID:      state.ProjectID,
		ConversationID: state.ConversationID,
		Message:        message,
	})
	if err != nil {
		s.store.Dispatch(viewstate.ChatFailed{Err: err})
		return err
	}

	s.store.Dispatch(viewstate.RepliesReceived{Conversation: reply})
	return nil
}

func (s *chatSession) interactive(userInterface ui.UserInterface) error {
	state := s.store.State()
	if err := userInterface.Output(presenters.RenderChat(state)); err != nil {
		return err
	}
	shown := len(state.Messages)

	for {
		if err := s.invocation.Context().Err(); err != nil {
			return errorcatalog.Label("chat", err)
		}

		input, err := userInterface.Input(chatPrompt)
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return errorcatalog.NewIOError("read message", err)
		}

		input = strings.TrimSpace(input)
		if len(input) == 0 {
			continue
		}
		if isChatExitCommand(input) {
			return nil
		}

		if err = s.send(input); err != nil {
			if errorcatalog.IsCancelled(err) {
				return err
			}
			// the session stays usable, e.g. after a rate limit
			_ = userInterface.OutputError(err)
			continue
		}

		state = s.store.State()
		for _, message := range state.Messages[min(shown, len(state.Messages)):] {
			if message.Role == viewstate.RoleUser {
				continue
			}
			if err = userInterface.Output(presenters.RenderMessage(message.Role, message.Content)); err != nil {
				return err
			}
		}
		shown = len(state.Messages)
	}
}

func isChatExitCommand(input string) bool {
	for _, command := range chatExitCommands {
		if strings.EqualFold(input, command) {
			return true
		}
	}
	return false
}
