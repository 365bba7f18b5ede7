// @title        Mess Booking API
// @version      1.0
// @description  宿舍餐廳的訂餐、菜單與月結帳單 API
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式為 Bearer {token}
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

var exitFunc = os.Exit

func main() {
	if err := run(os.Args[1:]); err != nil {
		logrus.WithError(err).Error("service stopped")
		exitFunc(1)
	}
}
