package main

import (
	// Embed the zone database so --tz works on hosts without one
	// 内嵌时区数据库，使 --tz 在没有时区数据的主机上也能使用
	_ "time/tzdata"

	"github.com/livp123/shieldevt/cmd/shieldevt/commands"
)

func main() {
	commands.Execute()
}
