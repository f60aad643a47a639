package main

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	passwords := map[string]string{
		"demo.alumni@university.edu":  "DemoAlumni#2024",
		"demo.student@university.edu": "DemoStudent#2024",
	}

	for email, pass := range passwords {
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Email: %s\nPassword: %s\nHash: %s\n\n", email, pass, string(hash))
	}
}
