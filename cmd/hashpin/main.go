// Command hashpin prints the bcrypt hash of a staff PIN, ready to be used
// in a STAFF entry ("name:ROLE:hash").
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/kiwari-pos/restaurant/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// CLI flags
	name := flag.String("name", "", "Staff name")
	role := flag.String("role", auth.RoleCashier, "Staff role (MANAGER, CASHIER, KITCHEN, WAITER)")
	pin := flag.String("pin", "", "Staff PIN")
	flag.Parse()

	// Fall back to environment variables
	if *pin == "" {
		*pin = os.Getenv("STAFF_PIN")
	}
	if *pin == "" {
		log.Fatal("pin is required (-pin or STAFF_PIN)")
	}

	r := strings.ToUpper(*role)
	if !auth.ValidRole(r) {
		log.Fatalf("invalid role %q", *role)
	}
	if strings.ContainsAny(*name, ":,") {
		log.Fatal("name must not contain ':' or ','")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*pin), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash pin: %v", err)
	}

	if *name == "" {
		fmt.Println(string(hash))
		return
	}
	fmt.Printf("%s:%s:%s\n", *name, r, hash)
}
