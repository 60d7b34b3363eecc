package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/outfitterco/outfitter/pkg/agent"
	"github.com/outfitterco/outfitter/pkg/llm"
	"github.com/outfitterco/outfitter/pkg/logger"
	testutils "github.com/outfitterco/outfitter/pkg/utils/test"
)

func chatRequest(body any) *http.Request {
	data, err := json.Marshal(body)
	Expect(err).NotTo(HaveOccurred())

	req, err := http.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader(data))
	Expect(err).NotTo(HaveOccurred())
	req.Header.Set("Content-Type", "application/json")
	return req
}

var _ = Describe("handleChat", func() {
	var (
		server *Server
		chat   *testutils.MockChat
	)

	BeforeEach(func() {
		chat = testutils.NewMockChat()
		assistant, err := agent.New(agent.Config{Chat: chat, Logger: logger.Nop()})
		Expect(err).NotTo(HaveOccurred())

		server = NewServer(Config{ListenAddr: ":0"}, nil, assistant, logger.Nop())
	})

	Context("when chat is not configured", func() {
		It("returns 503", func() {
			noChatServer := NewServer(Config{ListenAddr: ":0"}, nil, nil, logger.Nop())

			resp, err := noChatServer.app.Test(chatRequest(ChatRequest{Input: "hi"}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusServiceUnavailable))
		})
	})

	Context("with an invalid body", func() {
		It("returns 400 for malformed JSON", func() {
			req, err := http.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader([]byte("{not json")))
			Expect(err).NotTo(HaveOccurred())
			req.Header.Set("Content-Type", "application/json")

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})

		It("returns 400 for a missing input", func() {
			resp, err := server.app.Test(chatRequest(ChatRequest{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})
	})

	Context("with a valid request", func() {
		It("returns the assistant reply", func() {
			chat.Responses = []*llm.Response{{Content: "We have several jackets in stock."}}

			resp, err := server.app.Test(chatRequest(ChatRequest{Input: "show me jackets"}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())

			var decoded ChatResponse
			Expect(json.Unmarshal(body, &decoded)).To(Succeed())
			Expect(decoded.Reply).To(Equal("We have several jackets in stock."))
		})

		It("carries client-provided history into the model call", func() {
			chat.Responses = []*llm.Response{{Content: "Under $50, try the fleece."}}

			history := []llm.Message{
				{Role: llm.RoleUser, Content: "show me jackets"},
				{Role: llm.RoleAssistant, Content: "Here are some jackets."},
			}
			resp, err := server.app.Test(chatRequest(ChatRequest{Input: "cheaper?", History: history}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			messages := chat.Calls[0]
			Expect(messages).To(HaveLen(4))
			Expect(messages[1].Content).To(Equal("show me jackets"))
			Expect(messages[3].Content).To(Equal("cheaper?"))
		})
	})

	Context("when the assistant fails", func() {
		It("returns 500", func() {
			// No scripted responses, so the mock chat errors.
			resp, err := server.app.Test(chatRequest(ChatRequest{Input: "hi"}))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusInternalServerError))
		})
	})
})
