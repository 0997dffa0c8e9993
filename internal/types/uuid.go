package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex inv_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

// initializeSID initializes the shortid generator once
func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Total length is capped at 12 characters, e.g., `IN-XYZ12A8Q`.
// Used for human-facing invoice numbers.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(fmt.Sprintf("%s%s", prefix, id))
}

const (
	UUID_PREFIX_INVOICE               = "inv"
	UUID_PREFIX_INVOICE_ENTITY        = "inv_ent"
	UUID_PREFIX_INVOICE_TAX           = "inv_tax"
	UUID_PREFIX_INVOICE_DISCOUNT      = "inv_disc"
	UUID_PREFIX_PAYMENT_TRANSACTION   = "pay"
	UUID_PREFIX_PLAN                  = "plan"
	UUID_PREFIX_CYCLE_PRICE_BAND      = "band"
	UUID_PREFIX_PLAN_DISCOUNT         = "plan_disc"
	UUID_PREFIX_PLAN_ENTITLEMENT      = "plan_ent"
	UUID_PREFIX_PLAN_PROMO            = "promo"
	UUID_PREFIX_PLAN_TERM             = "term"
	UUID_PREFIX_SUBSCRIPTION_INSTANCE = "subs"
	UUID_PREFIX_BILLING_SCHEDULE      = "sched"

	SHORT_ID_PREFIX_INVOICE_NUMBER = "IN-"
)
