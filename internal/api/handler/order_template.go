package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/vfg2006/order-template-api/internal/usecases/templating"
	"github.com/vfg2006/order-template-api/pkg/apiErrors"
	"github.com/vfg2006/order-template-api/pkg/log"
)

// Mensagens devolvidas ao cliente. A causa real fica só no log.
const (
	msgMissingUserID  = "Missing user_id"
	msgFetchFailed    = "Error fetching reference data"
	msgGenerateFailed = "Error generating Excel file"
	msgInternalError  = "Internal server error"
)

// ExportOrdersTemplate devolve o template .xlsx do usuário informado em ?user_id=
func ExportOrdersTemplate(service templating.TemplateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		export, err := service.ExportOrdersTemplate(r.Context(), userID)
		if err != nil {
			writeTemplateError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": export.Filename,
		}))
		w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(export.Content); err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("Erro ao enviar o template")
			// derruba a conexão para o cliente não receber um arquivo pela metade
			panic(http.ErrAbortHandler)
		}
	}
}

func writeTemplateError(w http.ResponseWriter, r *http.Request, err error) {
	code := apiErrors.ErrInternalServer
	var tplErr *templating.TemplateError
	if errors.As(err, &tplErr) {
		code = tplErr.Code
	}

	message := msgInternalError
	switch {
	case errors.Is(err, templating.ErrMissingIdentifier):
		message = msgMissingUserID
	case errors.Is(err, templating.ErrReferenceFetch):
		message = msgFetchFailed
	case errors.Is(err, templating.ErrSerialization):
		message = msgGenerateFailed
	}

	if !templating.IsClientError(err) {
		log.ForContext(r.Context()).WithFields(log.Fields{
			"error": err.Error(),
			"code":  code,
		}).Error("Erro ao exportar o template de pedidos")
	}

	apiErrors.WriteText(w, code, message)
}
