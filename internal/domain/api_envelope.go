package domain

// Конверт ответа: успех кладётся в data, ошибка, в error{code,text}.
// /health и редиректы идут без конверта.
type APIError struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

type APIEnvelope struct {
	Error *APIError `json:"error,omitempty"`
	Data  any       `json:"data,omitempty"`
}

func OkData(data any) APIEnvelope { return APIEnvelope{Data: data} }

func Fail(code int, text string) APIEnvelope {
	return APIEnvelope{Error: &APIError{Code: code, Text: text}}
}
