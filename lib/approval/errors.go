package approvalhandler

import (
	"github.com/pkg/errors"
)

var (
	ErrNotFound        = errors.New("servis formu veya onay bağlantısı bulunamadı")
	ErrInvalidState    = errors.New("servis formu bu işlem için uygun durumda değil")
	ErrMissingContact  = errors.New("müşterinin iletişim e-postası tanımlı değil")
	ErrInvalidRequest  = errors.New("geçersiz işlem")
	ErrDeliveryFailure = errors.New("onay e-postası gönderilemedi")
)

// Warning is a degraded but non-fatal side effect of an otherwise
// successful operation. It is logged and reported separately from the
// operation's own error.
type Warning struct {
	Phase string
	Err   error
}

func (w Warning) Error() string {
	return w.Phase + ": " + w.Err.Error()
}
