package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/agentmesh-project/agentauth-go/pkg/auth"
	"github.com/agentmesh-project/agentauth-go/pkg/client"
	"github.com/agentmesh-project/agentauth-go/pkg/config"
	"github.com/agentmesh-project/agentauth-go/pkg/crypto"
	"github.com/agentmesh-project/agentauth-go/pkg/descriptor"
	"github.com/agentmesh-project/agentauth-go/pkg/did"
	"github.com/agentmesh-project/agentauth-go/pkg/resolver"
	"github.com/agentmesh-project/agentauth-go/pkg/server"
	"github.com/agentmesh-project/agentauth-go/pkg/session"
	"github.com/agentmesh-project/agentauth-go/pkg/transport"
)

// TaskRequest represents a task sent between agents
type TaskRequest struct {
	TaskID      string `json:"task_id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// TaskResponse represents a task response
type TaskResponse struct {
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// This example demonstrates the full agent-to-agent handshake: DID
// discovery, mutual authentication, and session reuse.
func main() {
	fmt.Println("=== Agent Handshake Example ===")
	fmt.Println()

	ctx := context.Background()

	// Step 1: Create two agents with DIDs and key pairs
	fmt.Println("Step 1: Creating two agents...")

	aliceDID := did.AgentDID("did:example:alice")
	bobDID := did.AgentDID("did:example:bob")

	aliceKey, err := crypto.GenerateEd25519KeyPair()
	if err != nil {
		log.Fatal(err)
	}
	bobKey, err := crypto.GenerateSecp256k1KeyPair()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("  Agent A (caller):    %s (EdDSA)\n", aliceDID)
	fmt.Printf("  Agent B (responder): %s (ES256K)\n\n", bobDID)

	// Step 2: Publish DID documents
	fmt.Println("Step 2: Publishing DID documents...")

	aliceDoc, err := did.NewKeyDocument(aliceDID, "#key-1", aliceKey.Algorithm(), aliceKey.PublicKey())
	if err != nil {
		log.Fatal(err)
	}
	bobDoc, err := did.NewKeyDocument(bobDID, "#key-1", bobKey.Algorithm(), bobKey.PublicKey())
	if err != nil {
		log.Fatal(err)
	}
	res := resolver.NewStatic(aliceDoc, bobDoc)

	fmt.Println("  ✓ Both documents registered with the resolver")
	fmt.Println()

	// Step 3: Start Agent B's server behind the auth middleware
	fmt.Println("Step 3: Starting Agent B's server...")

	cfg := config.Default()
	fmt.Printf("  Config: clock skew %s, session TTL %s\n", cfg.Auth.ClockSkew, cfg.Session.TTL)

	sessions := session.NewManager(
		session.WithTTL(cfg.Session.TTL.Std()),
		session.WithSweepInterval(cfg.Session.SweepInterval.Std()),
		session.WithTombstoneTTL(cfg.Session.SweepGrace.Std()),
	)
	defer sessions.Stop()

	bobMgr, err := auth.NewManager(res,
		auth.WithCredentials(&auth.Credentials{DID: bobDID, KeyPair: bobKey, VerificationMethod: "#key-1"}),
		auth.WithSessions(sessions),
		auth.WithMutual(),
		auth.WithClockSkew(cfg.Auth.ClockSkew.Std()),
	)
	if err != nil {
		log.Fatal(err)
	}
	mw := server.NewAuthMiddleware(bobMgr)

	mux := http.NewServeMux()
	mux.Handle("/tasks", mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, _ := server.CallerDID(r.Context())
		result, _ := server.AuthResult(r.Context())
		fmt.Printf("  [Agent B] authenticated %s (state: %s)\n", caller, result.State)

		var task TaskRequest
		if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
			http.Error(w, "invalid task", http.StatusBadRequest)
			return
		}
		fmt.Printf("  [Agent B] received task %s (priority: %s)\n", task.TaskID, task.Priority)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TaskResponse{
			TaskID:  task.TaskID,
			Status:  "accepted",
			Message: "Task queued for processing",
		})
	})))

	serverB := httptest.NewServer(mux)
	defer serverB.Close()

	fmt.Printf("  ✓ Agent B listening on %s\n\n", serverB.URL)

	// Step 4: Agent B publishes a signed descriptor; Agent A verifies it
	fmt.Println("Step 4: Discovering Agent B through its signed descriptor...")

	signer, err := descriptor.NewSigner(res)
	if err != nil {
		log.Fatal(err)
	}
	desc := descriptor.NewBuilder(bobDID, "AgentB", serverB.URL).
		WithDescription("Receiver agent").
		WithCapabilities("task.execute").
		Build()
	token, err := signer.Sign(ctx, desc, bobKey, "#key-1")
	if err != nil {
		log.Fatal(err)
	}

	discovered, err := signer.Verify(ctx, token)
	if err != nil {
		log.Fatalf("Descriptor verification failed: %v", err)
	}
	fmt.Printf("  ✓ Verified descriptor for %s\n", discovered.Name)
	fmt.Printf("  ✓ Endpoint: %s\n", discovered.Endpoint)
	fmt.Printf("  ✓ Can execute tasks: %v\n\n", discovered.HasCapability("task.execute"))

	// Step 5: Agent A sends an authenticated task request
	fmt.Println("Step 5: Agent A sending a task request...")

	aliceMgr, err := auth.NewManager(res)
	if err != nil {
		log.Fatal(err)
	}
	aliceClient, err := client.NewAuthClient(aliceMgr,
		&auth.Credentials{DID: aliceDID, KeyPair: aliceKey, VerificationMethod: "#key-1"},
		bobDID,
		transport.WithMutualVerification(),
	)
	if err != nil {
		log.Fatal(err)
	}

	taskJSON, _ := json.Marshal(TaskRequest{
		TaskID:      "task-12345",
		Type:        "data-processing",
		Description: "Process customer data for analytics",
		Priority:    "high",
	})

	resp, err := aliceClient.Post(ctx, discovered.Endpoint+"/tasks", taskJSON)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	var taskResp TaskResponse
	json.NewDecoder(resp.Body).Decode(&taskResp)
	resp.Body.Close()

	fmt.Printf("  ✓ Response: %s (%s)\n", taskResp.Status, taskResp.Message)
	fmt.Println("  ✓ Agent B's mutual proof verified by the client")
	fmt.Println()

	// Step 6: Follow-up request rides the issued session
	fmt.Println("Step 6: Sending a follow-up on the session...")

	taskJSON, _ = json.Marshal(TaskRequest{
		TaskID:      "task-12346",
		Type:        "data-processing",
		Description: "Second batch",
		Priority:    "normal",
	})
	resp, err = aliceClient.Post(ctx, discovered.Endpoint+"/tasks", taskJSON)
	if err != nil {
		log.Fatalf("Follow-up failed: %v", err)
	}
	json.NewDecoder(resp.Body).Decode(&taskResp)
	resp.Body.Close()

	fmt.Printf("  ✓ Response: %s\n", taskResp.Status)
	fmt.Printf("  ✓ Session token in use: %.12s...\n\n", aliceClient.SessionToken())

	// Summary
	fmt.Println("=== Handshake Summary ===")
	fmt.Println("  1. Agent A verified Agent B's signed descriptor")
	fmt.Println("  2. Agent A signed its request with its DID key")
	fmt.Println("  3. Agent B resolved Agent A's document and verified the signature")
	fmt.Println("  4. Agent B proved its own identity back (mutual authentication)")
	fmt.Println("  5. Follow-up requests reused the issued session token")
	fmt.Println()
	fmt.Println("=== Example completed successfully! ===")
}
