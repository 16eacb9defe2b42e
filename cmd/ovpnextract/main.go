// cmd/ovpnextract/main.go
package main

import (
	"github.com/MrSud0/openvpn-mem-extractor/internal/app"
	"github.com/MrSud0/openvpn-mem-extractor/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
