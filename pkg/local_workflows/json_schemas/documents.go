// Package json_schemas defines the json documents workflows hand to the output workflow and print
// with --json.
package json_schemas

import (
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/apiclients/cybedefend"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/findings"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/scanner"
	"github.com/CybeDefend/cybedefend-vscode-sub000/pkg/viewstate"
)

type ResultsDocument struct {
	ProjectID string        `json:"projectId"`
	ScanID    string        `json:"scanId,omitempty"`
	Status    string        `json:"status,omitempty"`
	Results   []KindResults `json:"results"`
}

type KindResults struct {
	Kind       findings.Kind      `json:"kind"`
	Page       int                `json:"page"`
	TotalPages int                `json:"totalPages"`
	Total      int                `json:"total"`
	Findings   []findings.Finding `json:"findings"`
}

// NewResultsDocument collects pages in the order they are given. nil pages are skipped.
func NewResultsDocument(projectID string, scanID string, status string, pages ...*cybedefend.ResultsPage) ResultsDocument {
	doc := ResultsDocument{ProjectID: projectID, ScanID: scanID, Status: status, Results: []KindResults{}}
	for _, page := range pages {
		if page == nil {
			continue
		}
		list := page.Findings
		if list == nil {
			list = []findings.Finding{}
		}
		doc.Results = append(doc.Results, KindResults{
			Kind:       page.Kind,
			Page:       page.Page,
			TotalPages: page.TotalPages,
			Total:      page.Total,
			Findings:   list,
		})
	}
	return doc
}

// State replays the document into a finished results view.
func (d ResultsDocument) State() viewstate.ResultsState {
	state := viewstate.NewResultsState(d.ProjectID)
	state = viewstate.ReduceResults(state, viewstate.ScanIdentified{ScanID: d.ScanID})
	for _, r := range d.Results {
		state = viewstate.ReduceResults(state, viewstate.ResultsLoaded{Page: &cybedefend.ResultsPage{
			Kind:       r.Kind,
			Findings:   r.Findings,
			Page:       r.Page,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		}})
	}
	return viewstate.ReduceResults(state, viewstate.StageChanged{Stage: scanner.StageDone})
}

type ConversationDocument struct {
	ProjectID      string               `json:"projectId"`
	ConversationID string               `json:"conversationId"`
	FindingID      string               `json:"findingId,omitempty"`
	Kind           findings.Kind        `json:"kind,omitempty"`
	Messages       []cybedefend.Message `json:"messages"`
}

func NewConversationDocument(state viewstate.ChatState) ConversationDocument {
	messages := state.Messages
	if messages == nil {
		messages = []cybedefend.Message{}
	}
	return ConversationDocument{
		ProjectID:      state.ProjectID,
		ConversationID: state.ConversationID,
		FindingID:      state.FindingID,
		Kind:           state.Kind,
		Messages:       messages,
	}
}

func (d ConversationDocument) State() viewstate.ChatState {
	state := viewstate.NewChatState(d.ProjectID)
	return viewstate.ReduceChat(state, viewstate.ConversationStarted{
		Conversation: &cybedefend.Conversation{ConversationID: d.ConversationID, Messages: d.Messages},
		FindingID:    d.FindingID,
		Kind:         d.Kind,
	})
}
