package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"ideas-para/internal/service"
	"ideas-para/internal/service/mocks"
)

const validKey = "sk-proj-abcdefghijklmnopqrstuvwxyz0123456789abc"

func validMessages() []service.Message {
	return []service.Message{
		{Role: "system", Content: "Eres ConciencIA."},
		{Role: "user", Content: "Hola"},
	}
}

func TestProcessChat(t *testing.T) {
	tests := []struct {
		name        string
		req         service.ChatRequest
		setupMock   func(m *mocks.MockUpstreamClient)
		wantErr     bool
		wantField   string
		wantMessage string
	}{
		{
			name: "happy path",
			req:  service.ChatRequest{APIKey: validKey, Messages: validMessages()},
			setupMock: func(m *mocks.MockUpstreamClient) {
				m.EXPECT().
					ChatCompletion(gomock.Any(), validKey, gomock.Any(), gomock.Any()).
					Return("Hola, ¿cómo estás?", service.Usage{PromptTokens: 10, CompletionTokens: 8, TotalTokens: 18}, nil)
			},
		},
		{
			name:        "missing api key",
			req:         service.ChatRequest{Messages: validMessages()},
			wantErr:     true,
			wantField:   "apiKey",
			wantMessage: "API key requerida",
		},
		{
			name:        "wrong key prefix",
			req:         service.ChatRequest{APIKey: "pk-proj-abcdefghijklmnopqrstuvwxyz0123456789abc", Messages: validMessages()},
			wantErr:     true,
			wantField:   "apiKey",
			wantMessage: `API key inválida. Debe empezar con "sk-"`,
		},
		{
			name:        "key too short",
			req:         service.ChatRequest{APIKey: "sk-123", Messages: validMessages()},
			wantErr:     true,
			wantField:   "apiKey",
			wantMessage: "API key muy corta. Debe tener ~50+ caracteres",
		},
		{
			name:        "credential check runs before message check",
			req:         service.ChatRequest{APIKey: "pk-bad"},
			wantErr:     true,
			wantField:   "apiKey",
			wantMessage: `API key inválida. Debe empezar con "sk-"`,
		},
		{
			name:        "empty messages",
			req:         service.ChatRequest{APIKey: validKey},
			wantErr:     true,
			wantField:   "messages",
			wantMessage: "Mensajes requeridos",
		},
		{
			name: "message with unknown role",
			req: service.ChatRequest{
				APIKey:   validKey,
				Messages: []service.Message{{Role: "tool", Content: "x"}},
			},
			wantErr:     true,
			wantField:   "messages",
			wantMessage: "Formato de mensajes inválido",
		},
		{
			name: "message with empty content",
			req: service.ChatRequest{
				APIKey:   validKey,
				Messages: []service.Message{{Role: "user", Content: ""}},
			},
			wantErr:     true,
			wantField:   "messages",
			wantMessage: "Formato de mensajes inválido",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			upstream := mocks.NewMockUpstreamClient(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(upstream)
			}

			svc := service.NewChatService(upstream)
			resp, err := svc.ProcessChat(context.Background(), tt.req)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ProcessChat() error = %v, want nil", err)
				}
				if resp.Response == "" {
					t.Error("ProcessChat() returned empty response")
				}
				if resp.Usage.TotalTokens != 18 {
					t.Errorf("ProcessChat() total tokens = %d, want 18", resp.Usage.TotalTokens)
				}
				return
			}

			if err == nil {
				t.Fatal("ProcessChat() error = nil, want validation error")
			}
			var ve *service.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ProcessChat() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("error field = %q, want %q", ve.Field, tt.wantField)
			}
			if ve.Message != tt.wantMessage {
				t.Errorf("error message = %q, want %q", ve.Message, tt.wantMessage)
			}
		})
	}
}

func TestProcessChatUpstreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	upstream := mocks.NewMockUpstreamClient(ctrl)
	upstream.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", service.Usage{}, service.ErrQuotaExceeded)

	svc := service.NewChatService(upstream)
	_, err := svc.ProcessChat(context.Background(), service.ChatRequest{
		APIKey:   validKey,
		Messages: validMessages(),
	})
	if !errors.Is(err, service.ErrQuotaExceeded) {
		t.Errorf("ProcessChat() error = %v, want ErrQuotaExceeded", err)
	}
}

func TestProcessChatEmptyCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	upstream := mocks.NewMockUpstreamClient(ctrl)
	upstream.EXPECT().
		ChatCompletion(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", service.Usage{}, nil)

	svc := service.NewChatService(upstream)
	_, err := svc.ProcessChat(context.Background(), service.ChatRequest{
		APIKey:   validKey,
		Messages: validMessages(),
	})
	if !errors.Is(err, service.ErrEmptyCompletion) {
		t.Errorf("ProcessChat() error = %v, want ErrEmptyCompletion", err)
	}
}

func TestProcessChatForwardsSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	upstream := mocks.NewMockUpstreamClient(ctrl)

	settings := service.GenerationSettings{Temperature: 0.2, MaxTokens: 500}
	upstream.EXPECT().
		ChatCompletion(gomock.Any(), validKey, validMessages(), settings).
		Return("ok", service.Usage{}, nil)

	svc := service.NewChatService(upstream)
	if _, err := svc.ProcessChat(context.Background(), service.ChatRequest{
		APIKey:   validKey,
		Messages: validMessages(),
		Settings: settings,
	}); err != nil {
		t.Fatalf("ProcessChat() error = %v", err)
	}
}
