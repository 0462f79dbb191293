package httpx

import (
	"fmt"
	"net/http"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/log"
)

// LogInternalError logs err under a dotted error code and answers a plain
// 500. The code is for the operator; the client never sees the cause.
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// LogNotFound logs the missing id at debug level and answers an empty 404.
func LogNotFound(w http.ResponseWriter, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	w.WriteHeader(http.StatusNotFound)
}

// LogStatus logs the code at the given level and answers the status with its
// default text.
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// LogStatusMsg is LogStatus with a formatted message that is also sent to
// the client, for errors the admin UI shows verbatim.
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}
