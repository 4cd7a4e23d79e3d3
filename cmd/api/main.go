package main

import (
	"log"

	"stocksvc/cmd"

	_ "github.com/lib/pq"
)

func main() {
	apiHandler, db, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler, db)

	err = apiHandler.StartApi(3009)
	if err != nil {
		log.Fatal(err)
	}
}
