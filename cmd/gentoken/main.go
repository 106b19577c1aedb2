package main

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/vigia/internal/domain"
)

func main() {
	token, err := domain.GenerateIngestToken()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("INGEST_API_KEY=%s\n", token)
}
