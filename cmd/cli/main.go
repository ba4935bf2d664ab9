// Command cli is a small operator tool for bootstrapping accounts against
// a running prediction server. It prompts for the password without echo so
// credentials never land in shell history or process listings.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

func main() {
	addr := flag.String("addr", "http://localhost:8000", "server base URL")
	username := flag.String("username", "", "username to register")
	email := flag.String("email", "", "email address")
	gender := flag.String("gender", "", "gender")
	dob := flag.String("dob", "", "date of birth")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "username is required")
		os.Exit(1)
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading password: %v\n", err)
		os.Exit(1)
	}

	if err := register(*addr, registerRequest{
		Username:    *username,
		Password:    string(password),
		Email:       *email,
		Gender:      *gender,
		DateOfBirth: *dob,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Println("registered", *username)
}

// getPassword prints a prompt and reads a password from the terminal
// without echo. A newline is printed after the read to keep the UI tidy.
func getPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func register(baseURL string, req registerRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	resp, err := http.Post(baseURL+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error calling server: %w", err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("registration failed (%d): %s", resp.StatusCode, payload)
	}
	return nil
}
