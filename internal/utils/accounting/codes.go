package accounting

import (
	"fmt"
	"strings"
)

// Sub-ledger account codes are pure functions of (parent code, entity id) so
// they can be re-derived without a database round-trip. The formats match the
// historical convention: L200-C00007, E210-V000123.

// ClientAccountCode derives a per-client account code from a parent code.
func ClientAccountCode(parentCode string, customerID int64) string {
	return fmt.Sprintf("%s-C%05d", parentCode, customerID)
}

// VehicleAccountCode derives a per-vehicle account code from a parent code.
func VehicleAccountCode(parentCode string, vehicleID int64) string {
	return fmt.Sprintf("%s-V%06d", parentCode, vehicleID)
}

// ParentCode strips the sub-ledger suffix from a derived account code,
// returning the canonical parent. Codes without a suffix come back unchanged.
func ParentCode(code string) string {
	if idx := strings.IndexByte(code, '-'); idx > 0 {
		return code[:idx]
	}
	return code
}
