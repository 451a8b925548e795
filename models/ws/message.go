package wsmodels

type ServerMessage struct {
	Time string `json:"time"`
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
