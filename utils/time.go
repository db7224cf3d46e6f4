package utils

import (
	"log"
	"os"
	"sync"
	"time"
)

var (
	shopLoc     *time.Location
	shopLocOnce sync.Once
)

// ShopLocation returns the timezone all schedule math runs in, loaded from
// SHOP_TZ (IANA name). Defaults to UTC so date boundaries are never a mix of
// server-local and UTC arithmetic.
func ShopLocation() *time.Location {
	shopLocOnce.Do(func() {
		tz := os.Getenv("SHOP_TZ")
		if tz == "" {
			shopLoc = time.UTC
			return
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("Warning: invalid SHOP_TZ %q, falling back to UTC", tz)
			shopLoc = time.UTC
			return
		}
		shopLoc = loc
	})
	return shopLoc
}
