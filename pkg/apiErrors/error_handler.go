package apiErrors

import (
	"net/http"
	"strconv"
)

const (
	// Erros de validação (2000-2999)
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes

	// Erros do servidor (5000-5999)
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrReferenceFetch = "SRV_005" // Falha ao buscar dados de referência
	ErrSerialization  = "SRV_006" // Falha ao gerar o arquivo
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrReferenceFetch:      http.StatusInternalServerError,
	ErrSerialization:       http.StatusInternalServerError,
}

// StatusFor retorna o status HTTP do código, 500 para códigos desconhecidos
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteText escreve o erro como texto simples. O código vai no cabeçalho X-Error-Code.
func WriteText(w http.ResponseWriter, code string, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("Content-Length", strconv.Itoa(len(message)))
	w.WriteHeader(StatusFor(code))
	_, _ = w.Write([]byte(message))
}
