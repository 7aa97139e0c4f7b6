// Command token emite un JWT para un operador. El user id del token firma los movimientos.
//
//	go run ./cmd/token -user ana -role bodeguero
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stockbook/pkg/config"
	"github.com/jhoicas/stockbook/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "identificador del operador (performedBy)")
	role := flag.String("role", "bodeguero", "rol: admin | bodeguero")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
