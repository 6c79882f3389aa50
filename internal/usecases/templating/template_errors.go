package templating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/order-template-api/pkg/apiErrors"
)

var (
	ErrMissingIdentifier = errors.New("identificador do usuário ausente")
	ErrReferenceFetch    = errors.New("falha ao buscar dados de referência")
	ErrSerialization     = errors.New("falha ao gerar o arquivo do template")
)

// TemplateError carrega o contexto da falha: usuário, coleção e causa original
type TemplateError struct {
	Err        error  // Erro base (um dos sentinelas acima)
	Code       string // Código de erro para API
	UserID     string
	Collection string // Coleção que falhou, quando aplicável
	Details    string
	Cause      error
}

func (e *TemplateError) Error() string {
	msg := e.Err.Error()
	if e.Collection != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Collection)
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap expõe tanto o sentinela quanto a causa para errors.Is/As
func (e *TemplateError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NewMissingIdentifierError() *TemplateError {
	return &TemplateError{
		Err:     ErrMissingIdentifier,
		Code:    apiErrors.ErrMissingRequiredData,
		Details: "user_id não informado",
	}
}

func NewReferenceFetchError(userID, collection string, cause error) *TemplateError {
	return &TemplateError{
		Err:        ErrReferenceFetch,
		Code:       apiErrors.ErrReferenceFetch,
		UserID:     userID,
		Collection: collection,
		Cause:      cause,
	}
}

func NewSerializationError(userID string, cause error) *TemplateError {
	return &TemplateError{
		Err:    ErrSerialization,
		Code:   apiErrors.ErrSerialization,
		UserID: userID,
		Cause:  cause,
	}
}

// IsClientError indica se a falha foi causada pela requisição e não pelo servidor
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingIdentifier)
}
