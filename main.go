package main

import (
	"github.com/cod3gen/zeekr-homeassistant/cmd"
)

func main() {
	cmd.Execute()
}
