// shopctl is a small command line client for the Shopfloor API, meant
// for poking a running server from a terminal on the floor.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"skyward-mro/shopfloor/internal/models/dtos"
)

var (
	serverURL string
	authToken string
)

func main() {
	root := &cobra.Command{
		Use:   "shopctl",
		Short: "Command line client for the Shopfloor repair tracking API",
	}
	root.PersistentFlags().StringVar(&serverURL, "server", envOr("SHOPFLOOR_SERVER", "http://localhost:8080"), "base URL of the Shopfloor server")
	root.PersistentFlags().StringVar(&authToken, "token", os.Getenv("SHOPFLOOR_TOKEN"), "bearer token, obtained via shopctl login")

	root.AddCommand(loginCmd())
	root.AddCommand(partsCmd())
	root.AddCommand(notificationsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <user-id>",
		Short: "Exchange a user id for a session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(dtos.LoginRequest{UserID: args[0]})
			if err != nil {
				return err
			}
			data, err := doRequest(http.MethodPost, "/api/v1/auth/login", body)
			if err != nil {
				return err
			}

			var resp struct {
				Data dtos.LoginResponse `json:"data"`
			}
			if err := json.Unmarshal(data, &resp); err != nil {
				return fmt.Errorf("unexpected login response: %w", err)
			}
			fmt.Printf("Logged in as %s (%s)\n", resp.Data.Name, resp.Data.Role)
			fmt.Printf("export SHOPFLOOR_TOKEN=%s\n", resp.Data.Token)
			return nil
		},
	}
}

func partsCmd() *cobra.Command {
	parts := &cobra.Command{
		Use:   "parts",
		Short: "Inspect and register parts",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List parts in the shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/parts"
			if status != "" {
				path += "?status=" + status
			}
			return printJSON(http.MethodGet, path, nil)
		},
	}
	list.Flags().StringVar(&status, "status", "", "filter by status")

	var req dtos.IntakeRequest
	intake := &cobra.Command{
		Use:   "intake",
		Short: "Register an incoming part",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.PartNumber == "" || req.WorkOrder == "" {
				return fmt.Errorf("--part-number and --work-order are required")
			}
			body, err := json.Marshal(req)
			if err != nil {
				return err
			}
			return printJSON(http.MethodPost, "/api/v1/parts", body)
		},
	}
	intake.Flags().StringVar(&req.PartNumber, "part-number", "", "manufacturer part number")
	intake.Flags().StringVar(&req.WorkOrder, "work-order", "", "work order reference")
	intake.Flags().StringVar(&req.Aircraft, "aircraft", "", "aircraft registration")
	intake.Flags().StringVar(&req.Customer, "customer", "", "customer name")
	intake.Flags().StringVar(&req.Location, "location", "", "shop location")
	intake.Flags().StringVar(&req.Priority, "priority", "medium", "low, medium, high or critical")
	intake.Flags().Float64Var(&req.EstimatedHours, "estimated-hours", 0, "estimated repair hours")

	get := &cobra.Command{
		Use:   "get <part-id>",
		Short: "Show one part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(http.MethodGet, "/api/v1/parts/"+args[0], nil)
		},
	}

	parts.AddCommand(list, intake, get)
	return parts
}

func notificationsCmd() *cobra.Command {
	notifications := &cobra.Command{
		Use:   "notifications",
		Short: "Read the advisory feed",
	}

	var unreadOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/notifications"
			if unreadOnly {
				path += "?unread=true"
			}
			return printJSON(http.MethodGet, path, nil)
		},
	}
	list.Flags().BoolVar(&unreadOnly, "unread", false, "only unread notifications")

	read := &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(http.MethodPost, "/api/v1/notifications/"+args[0]+"/read", nil)
		},
	}

	notifications.AddCommand(list, read)
	return notifications
}

func doRequest(method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, serverURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, bytes.TrimSpace(data))
	}
	return data, nil
}

func printJSON(method, path string, body []byte) error {
	data, err := doRequest(method, path, body)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}
