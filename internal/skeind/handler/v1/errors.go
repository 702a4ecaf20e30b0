package v1

import (
	"net/http"

	"github.com/skeinlab/skein/pkg/errorx"
)

// Skeind handler error codes.
// Code format: 2XXYYZ
//   - 2:  module prefix (skeind handler)
//   - XX: resource group (00=common, 01=conversation, 02=event, 03=thread, 04=hint)
//   - YY: sequential error number
//   - Z:  reserved (0)

const (
	// Common request errors (200xxx).
	ErrBind       = 200001
	ErrValidation = 200002

	// Conversation errors (2001xx).
	ErrConversationNotFound = 200101
	ErrConversationCreate   = 200102
	ErrConversationList     = 200103
	ErrConversationDelete   = 200104

	// Event errors (2002xx).
	ErrEventAppend = 200201
	ErrEventList   = 200202

	// Thread errors (2003xx).
	ErrThreadBuild = 200301
	ErrWatchSetup  = 200302

	// Hint errors (2004xx).
	ErrHintSet = 200401
)

func init() {
	// Common.
	errorx.MustRegister(newCoder(ErrBind, http.StatusBadRequest, "Request body binding failed"))
	errorx.MustRegister(newCoder(ErrValidation, http.StatusBadRequest, "Request validation failed"))

	// Conversation.
	errorx.MustRegister(newCoder(ErrConversationNotFound, http.StatusNotFound, "Conversation not found"))
	errorx.MustRegister(newCoder(ErrConversationCreate, http.StatusInternalServerError, "Failed to create conversation"))
	errorx.MustRegister(newCoder(ErrConversationList, http.StatusInternalServerError, "Failed to list conversations"))
	errorx.MustRegister(newCoder(ErrConversationDelete, http.StatusInternalServerError, "Failed to delete conversation"))

	// Event.
	errorx.MustRegister(newCoder(ErrEventAppend, http.StatusBadRequest, "Failed to append events"))
	errorx.MustRegister(newCoder(ErrEventList, http.StatusInternalServerError, "Failed to list events"))

	// Thread.
	errorx.MustRegister(newCoder(ErrThreadBuild, http.StatusInternalServerError, "Failed to reconstruct thread"))
	errorx.MustRegister(newCoder(ErrWatchSetup, http.StatusInternalServerError, "Failed to open watch stream"))

	// Hint.
	errorx.MustRegister(newCoder(ErrHintSet, http.StatusBadRequest, "Failed to set hint"))
}

type coder struct {
	code int
	http int
	msg  string
}

func newCoder(code, httpStatus int, msg string) *coder {
	return &coder{code: code, http: httpStatus, msg: msg}
}

func (c *coder) Code() int         { return c.code }
func (c *coder) HTTPStatus() int   { return c.http }
func (c *coder) String() string    { return c.msg }
func (c *coder) Reference() string { return "" }
