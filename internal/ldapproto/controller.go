package ldapproto

import (
	"errors"
	"log/slog"

	"github.com/lor00x/goldap/message"

	"github.com/patchwork-oss/ldapd/internal/directory"
	"github.com/patchwork-oss/ldapd/internal/schema"
)

// Controller dispatches a decoded request to the directory/schema
// services and builds the response PDU, using the triggering request's
// message ID. It holds no per-connection state, so a single Controller is
// shared across every connection's goroutine.
type Controller[T directory.ID] struct {
	entries *directory.Service[T]
}

// NewController wires a protocol controller to the entry service.
func NewController[T directory.ID](entries *directory.Service[T]) *Controller[T] {
	return &Controller[T]{entries: entries}
}

// Handle dispatches one decoded request and returns the response PDU to
// write back. shouldClose is true for UnbindRequest: no response is sent
// and the caller must close the connection without writing anything.
func (c *Controller[T]) Handle(req *message.LDAPMessage) (response *message.LDAPMessage, shouldClose bool) {
	messageID := int(req.MessageID())

	switch op := req.ProtocolOp().(type) {
	case message.BindRequest:
		return c.handleBind(messageID, op), false

	case message.AddRequest:
		return c.handleAdd(messageID, op), false

	case message.SearchRequest:
		return c.handleSearch(messageID, op), false

	case message.UnbindRequest:
		return nil, true

	default:
		slog.Warn("unsupported LDAP operation", "operation", req.ProtocolOpName())
		return respond(messageID, unwillingToPerform("Request type not implemented")), false
	}
}

// handleBind always succeeds: the bind-time password check is
// always-accept, so credentials are never inspected.
func (c *Controller[T]) handleBind(messageID int, req message.BindRequest) *message.LDAPMessage {
	resp := message.BindResponse{}
	resp.SetResultCode(message.ResultCodeSuccess)
	resp.SetMatchedDN(req.Name())
	resp.SetDiagnosticMessage("not checking passwords")
	return wrap(messageID, resp)
}

// handleSearch is a stub: no matching logic, always a successful
// SearchResultDone with no entries returned.
func (c *Controller[T]) handleSearch(messageID int, req message.SearchRequest) *message.LDAPMessage {
	resp := message.SearchResultDone{}
	resp.SetResultCode(message.ResultCodeSuccess)
	return wrap(messageID, resp)
}

// handleAdd runs add-entry command construction and the add-entry
// transaction, mapping any error kind to its resultCode.
func (c *Controller[T]) handleAdd(messageID int, req message.AddRequest) *message.LDAPMessage {
	cmd, err := BuildAddEntryCommand(req)
	if err != nil {
		return respond(messageID, resultFor(err))
	}

	if _, err := c.entries.AddEntry(cmd.DN, cmd.Attributes); err != nil {
		slog.Debug("add entry failed", "dn", cmd.DN, "error", err)
		return respond(messageID, resultFor(err))
	}

	slog.Info("entry added", "dn", cmd.DN)
	resp := message.AddResponse{}
	resp.SetResultCode(message.ResultCodeSuccess)
	return wrap(messageID, resp)
}

// ldapResult is a plain resultCode-plus-diagnostic pair, the shape every
// error path below maps an error kind to before it is wrapped in a PDU.
// Keeping it separate from message.AddResponse makes the mapping itself
// testable without constructing a goldap response value.
type ldapResult struct {
	code       int
	diagnostic string
}

// resultFor maps an error kind to its LDAP resultCode and a diagnostic
// message.
func resultFor(err error) ldapResult {
	var (
		invalidAdd    *InvalidAddRequestError
		invalidDN     *schema.InvalidDNError
		alreadyExists *directory.EntryAlreadyExistsError
		doesNotExist  *directory.EntryDoesNotExistsError
		unknownAttr   *schema.UnknownAttributeError
		unknownClass  *schema.UnknownObjectClassError
		invalidEntry  *schema.InvalidEntryError
		invalidSchema *schema.InvalidSchemaError
	)

	switch {
	case errors.As(err, &invalidAdd):
		return ldapResult{message.ResultCodeProtocolError, invalidAdd.Msg}
	case errors.As(err, &invalidDN):
		return ldapResult{message.ResultCodeInvalidDNSyntax, invalidDN.Msg}
	case errors.As(err, &alreadyExists):
		return ldapResult{message.ResultCodeEntryAlreadyExists, err.Error()}
	case errors.As(err, &doesNotExist):
		return ldapResult{message.ResultCodeNoSuchObject, err.Error()}
	case errors.As(err, &unknownAttr):
		return ldapResult{message.ResultCodeUndefinedAttributeType, err.Error()}
	case errors.As(err, &unknownClass):
		return ldapResult{message.ResultCodeUndefinedAttributeType, err.Error()}
	case errors.As(err, &invalidEntry):
		return ldapResult{message.ResultCodeUnwillingToPerform, err.Error()}
	case errors.As(err, &invalidSchema):
		return ldapResult{message.ResultCodeOperationsError, err.Error()}
	default:
		return ldapResult{message.ResultCodeOperationsError, err.Error()}
	}
}

func unwillingToPerform(msg string) ldapResult {
	return ldapResult{message.ResultCodeUnwillingToPerform, msg}
}

// respond wraps a plain resultCode-plus-diagnostic result in the
// triggering message's correlated response PDU. Every error path here
// maps to that shape, and AddResponse carries it, so it doubles as the
// generic "any protocolOp with just a resultCode" PDU outside of a
// successful operation's own response type.
func respond(messageID int, r ldapResult) *message.LDAPMessage {
	resp := message.AddResponse{}
	resp.SetResultCode(r.code)
	resp.SetDiagnosticMessage(r.diagnostic)
	return wrap(messageID, resp)
}

func wrap(messageID int, op message.ProtocolOp) *message.LDAPMessage {
	msg := message.NewLDAPMessageWithProtocolOp(op)
	msg.SetMessageID(messageID)
	return &msg
}
