/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler_test

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/botobag/pokedex/concurrent"
	"github.com/botobag/pokedex/handler"
	. "github.com/botobag/pokedex/internal/testutil"
	"github.com/botobag/pokedex/pokedex"
	"github.com/botobag/pokedex/schema"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	jsoniter "github.com/json-iterator/go"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type response struct {
	Data   map[string]interface{}     `json:"data"`
	Errors []gqlerrors.FormattedError `json:"errors"`
}

func newFixtureStore() *pokedex.Store {
	id := "025"
	return pokedex.NewStore(&pokedex.Seed{
		Pokemon: []*pokedex.Pokemon{
			{
				ID:    &id,
				Name:  "Pikachu",
				Types: []string{"Electric"},
			},
		},
		Types: []string{"Electric", "Water"},
	})
}

func newSchema(store *pokedex.Store) *graphql.Schema {
	s, err := schema.New(&schema.Config{Store: store})
	Expect(err).ShouldNot(HaveOccurred())
	return &s
}

func decodeResponse(recorder *httptest.ResponseRecorder) *response {
	Expect(recorder.Code).Should(Equal(http.StatusOK))
	Expect(recorder.Header().Get("Content-Type")).Should(Equal("application/json"))

	var resp response
	Expect(jsoniter.Unmarshal(recorder.Body.Bytes(), &resp)).Should(Succeed())
	return &resp
}

// dataJSON encodes the data of resp back into JSON text for matching with MatchJSON.
func dataJSON(resp *response) string {
	data, err := jsoniter.Marshal(resp.Data)
	Expect(err).ShouldNot(HaveOccurred())
	return string(data)
}

func postJSON(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	h.ServeHTTP(recorder, req)
	return recorder
}

var _ = Describe("Handler", func() {
	var (
		store    *pokedex.Store
		executor *concurrent.SerialExecutor
		h        http.Handler
	)

	BeforeEach(func() {
		store = newFixtureStore()
		executor = concurrent.NewSerialExecutor()

		var err error
		h, err = handler.New(newSchema(store), handler.WithExecutor(executor))
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		terminated, err := executor.Shutdown()
		Expect(err).ShouldNot(HaveOccurred())
		<-terminated
	})

	It("requires a schema", func() {
		_, err := handler.New(nil)
		Expect(err).Should(HaveOccurred())

		_, err = handler.New(&graphql.Schema{})
		Expect(err).Should(HaveOccurred())
	})

	It("serves queries in JSON body", func() {
		resp := decodeResponse(postJSON(h, `{"query": "{ getPokemonById(id: \"025\") { name types } }"}`))
		Expect(resp.Errors).Should(BeEmpty())
		Expect(dataJSON(resp)).Should(MatchJSON(`{
			"getPokemonById": {"name": "Pikachu", "types": ["Electric"]}
		}`))
	})

	It("serves queries in URL", func() {
		values := url.Values{}
		values.Set("query", "query ($name: String!) { getPokemonByName(name: $name) { id } }")
		values.Set("variables", `{"name": "Pikachu"}`)

		recorder := httptest.NewRecorder()
		h.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/graphql?"+values.Encode(), nil))

		resp := decodeResponse(recorder)
		Expect(resp.Errors).Should(BeEmpty())
		Expect(dataJSON(resp)).Should(MatchJSON(`{"getPokemonByName": {"id": "025"}}`))
	})

	It("serves queries in application/graphql body", func() {
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("{ Types }"))
		req.Header.Set("Content-Type", "application/graphql")
		recorder := httptest.NewRecorder()
		h.ServeHTTP(recorder, req)

		resp := decodeResponse(recorder)
		Expect(dataJSON(resp)).Should(MatchJSON(`{"Types": ["Electric", "Water"]}`))
	})

	It("serves queries in form body", func() {
		values := url.Values{}
		values.Set("query", "{ Types }")
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		recorder := httptest.NewRecorder()
		h.ServeHTTP(recorder, req)

		resp := decodeResponse(recorder)
		Expect(dataJSON(resp)).Should(MatchJSON(`{"Types": ["Electric", "Water"]}`))
	})

	It("selects the operation by name", func() {
		resp := decodeResponse(postJSON(h, `{
			"query": "query A { Types } mutation B { createType(input: {name: \"Fire\"}) }",
			"operationName": "B"
		}`))
		Expect(resp.Errors).Should(BeEmpty())
		Expect(dataJSON(resp)).Should(MatchJSON(`{"createType": ["Electric", "Water", "Fire"]}`))
	})

	It("reports field errors with path", func() {
		resp := decodeResponse(postJSON(h, `{"query": "mutation { deletePokemon(id: \"999\") { name } }"}`))
		Expect(resp.Errors).Should(ConsistOfGraphQLErrors(
			MatchGraphQLError(
				MessageContainSubstring("index out of range"),
				PathEqual("deletePokemon"),
			),
		))
		Expect(resp.Data).Should(HaveKeyWithValue("deletePokemon", BeNil()))
	})

	It("refuses mutations from GET requests", func() {
		values := url.Values{}
		values.Set("query", `mutation { createType(input: {name: "Ghost"}) }`)

		recorder := httptest.NewRecorder()
		h.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/graphql?"+values.Encode(), nil))

		Expect(recorder.Code).Should(Equal(http.StatusMethodNotAllowed))
		Expect(recorder.Header().Get("Allow")).Should(Equal(http.MethodPost))
		Expect(recorder.Body.String()).Should(
			ContainSubstring("Can only perform a mutation operation from a POST request."))
		Expect(store.Types()).Should(HaveLen(2))
	})

	It("serves the query operation of a document with mutations from GET requests", func() {
		values := url.Values{}
		values.Set("query", `query A { Types } mutation B { createType(input: {name: "Ghost"}) }`)
		values.Set("operationName", "A")

		recorder := httptest.NewRecorder()
		h.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/graphql?"+values.Encode(), nil))

		resp := decodeResponse(recorder)
		Expect(resp.Errors).Should(BeEmpty())
		Expect(dataJSON(resp)).Should(MatchJSON(`{"Types": ["Electric", "Water"]}`))

		values.Set("operationName", "B")
		recorder = httptest.NewRecorder()
		h.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/graphql?"+values.Encode(), nil))
		Expect(recorder.Code).Should(Equal(http.StatusMethodNotAllowed))
		Expect(store.Types()).Should(HaveLen(2))
	})

	It("rejects empty query", func() {
		recorder := postJSON(h, `{}`)
		Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
		Expect(recorder.Body.String()).Should(ContainSubstring("empty query"))
	})

	It("rejects malformed query", func() {
		recorder := postJSON(h, `{"query": "{ Types"}`)
		Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
		Expect(recorder.Body.String()).Should(ContainSubstring("Syntax Error"))
	})

	It("rejects malformed request body", func() {
		recorder := postJSON(h, `{"query": `)
		Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
	})

	It("reports validation errors without executing", func() {
		resp := decodeResponse(postJSON(h, `{"query": "mutation { createType(input: {}) }"}`))
		Expect(resp.Errors).ShouldNot(BeEmpty())
		Expect(resp.Data).Should(BeNil())

		resp = decodeResponse(postJSON(h, `{"query": "{ foo }"}`))
		Expect(resp.Errors).Should(ConsistOfGraphQLErrors(
			MatchGraphQLError(
				MessageContainSubstring(`Cannot query field "foo"`),
				LocationEqual(1, 3),
			),
		))

		Expect(store.Types()).Should(HaveLen(2))
	})

	It("limits request body size", func() {
		h, err := handler.New(newSchema(store), handler.WithExecutor(executor), handler.MaxBodySize(16))
		Expect(err).ShouldNot(HaveOccurred())

		recorder := postJSON(h, `{"query": "{ Types }"}`)
		Expect(recorder.Code).Should(Equal(http.StatusBadRequest))
		Expect(recorder.Body.String()).Should(ContainSubstring(handler.ErrRequestBodyTooLarge.Error()))
	})

	It("caches validated documents", func() {
		cache, err := handler.NewLRUOperationCache(1)
		Expect(err).ShouldNot(HaveOccurred())

		h, err := handler.New(newSchema(store),
			handler.WithExecutor(executor),
			handler.OverrideOperationCache(cache))
		Expect(err).ShouldNot(HaveOccurred())

		for i := 0; i < 2; i++ {
			resp := decodeResponse(postJSON(h, `{"query": "{ Types }"}`))
			Expect(resp.Errors).Should(BeEmpty())
		}
		Expect(cache.Len()).Should(Equal(1))

		_, ok := cache.Get("{ Types }")
		Expect(ok).Should(BeTrue())

		// Invalid documents are not cached.
		decodeResponse(postJSON(h, `{"query": "{ foo }"}`))
		_, ok = cache.Get("{ foo }")
		Expect(ok).Should(BeFalse())
	})

	It("works without operation cache", func() {
		h, err := handler.New(newSchema(store),
			handler.WithExecutor(executor),
			handler.OverrideOperationCache(handler.NopOperationCache{}))
		Expect(err).ShouldNot(HaveOccurred())

		resp := decodeResponse(postJSON(h, `{"query": "{ Types }"}`))
		Expect(resp.Errors).Should(BeEmpty())
	})

	It("applies mutations from concurrent requests one at a time", func() {
		const N = 20

		var wg sync.WaitGroup
		wg.Add(N)
		for i := 0; i < N; i++ {
			go func(i int) {
				defer GinkgoRecover()
				defer wg.Done()
				query := fmt.Sprintf(`{"query": "mutation { createType(input: {name: \"T%d\"}) }"}`, i)
				Expect(decodeResponse(postJSON(h, query)).Errors).Should(BeEmpty())
			}(i)
		}
		wg.Wait()

		resp := decodeResponse(postJSON(h, `{"query": "{ Types }"}`))
		types, ok := resp.Data["Types"].([]interface{})
		Expect(ok).Should(BeTrue())
		Expect(types).Should(HaveLen(2 + N))
	})
})

var _ = Describe("LLHandler", func() {
	It("doesn't execute operations whose request has gone", func() {
		store := newFixtureStore()
		executor := concurrent.NewSerialExecutor()
		defer executor.Shutdown()

		llHandler, err := handler.NewLLHandler(&handler.LLConfig{
			Schema:   newSchema(store),
			Executor: executor,
		})
		Expect(err).ShouldNot(HaveOccurred())

		document, err := parser.Parse(parser.ParseParams{
			Source: source.NewSource(&source.Source{
				Body: []byte(`mutation { createType(input: {name: "Fire"}) }`),
			}),
		})
		Expect(err).ShouldNot(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := llHandler.Serve(&handler.Request{
			Ctx:      ctx,
			Document: document,
		})
		Expect(result.Errors).Should(ConsistOfGraphQLErrors(
			MatchGraphQLError(MessageContainSubstring("context canceled")),
		))
		Expect(store.Types()).Should(HaveLen(2))
	})
})

var _ = Describe("LLHandler with a blocking resolver", func() {
	var (
		executor  *concurrent.SerialExecutor
		llHandler *handler.LLHandler

		release chan struct{}
		started chan struct{}

		active    int32
		maxActive int32
	)

	enter := func() {
		n := atomic.AddInt32(&active, 1)
		for {
			seen := atomic.LoadInt32(&maxActive)
			if n <= seen || atomic.CompareAndSwapInt32(&maxActive, seen, n) {
				break
			}
		}
	}

	leave := func() {
		atomic.AddInt32(&active, -1)
	}

	parse := func(query string) *ast.Document {
		document, err := parser.Parse(parser.ParseParams{
			Source: source.NewSource(&source.Source{Body: []byte(query)}),
		})
		Expect(err).ShouldNot(HaveOccurred())
		return document
	}

	BeforeEach(func() {
		release = make(chan struct{})
		started = make(chan struct{})
		atomic.StoreInt32(&active, 0)
		atomic.StoreInt32(&maxActive, 0)

		s, err := graphql.NewSchema(graphql.SchemaConfig{
			Query: graphql.NewObject(graphql.ObjectConfig{
				Name: "Query",
				Fields: graphql.Fields{
					"blocking": {
						Type: graphql.String,
						Resolve: func(params graphql.ResolveParams) (interface{}, error) {
							enter()
							defer leave()
							close(started)
							<-release
							return "blocking", nil
						},
					},
					"quick": {
						Type: graphql.String,
						Resolve: func(params graphql.ResolveParams) (interface{}, error) {
							enter()
							defer leave()
							time.Sleep(10 * time.Millisecond)
							return "quick", nil
						},
					},
				},
			}),
		})
		Expect(err).ShouldNot(HaveOccurred())

		executor = concurrent.NewSerialExecutor()
		llHandler, err = handler.NewLLHandler(&handler.LLConfig{
			Schema:   &s,
			Executor: executor,
		})
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		terminated, err := executor.Shutdown()
		Expect(err).ShouldNot(HaveOccurred())
		<-terminated
	})

	It("keeps running an operation whose request is cancelled in the middle", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		blockingResult := make(chan *graphql.Result, 1)
		go func() {
			blockingResult <- llHandler.Serve(&handler.Request{
				Ctx:      ctx,
				Document: parse(`{ blocking }`),
			})
		}()
		Eventually(started).Should(BeClosed())

		cancel()

		quickResult := make(chan *graphql.Result, 1)
		go func() {
			quickResult <- llHandler.Serve(&handler.Request{
				Ctx:      context.Background(),
				Document: parse(`{ quick }`),
			})
		}()

		// Neither operation can finish while the blocking resolver holds the executor.
		Consistently(blockingResult).ShouldNot(Receive())
		Consistently(quickResult).ShouldNot(Receive())

		close(release)

		var result *graphql.Result
		Eventually(blockingResult).Should(Receive(&result))
		Expect(result.Errors).Should(BeEmpty())
		Expect(result.Data).Should(HaveKeyWithValue("blocking", "blocking"))

		Eventually(quickResult).Should(Receive(&result))
		Expect(result.Errors).Should(BeEmpty())
		Expect(result.Data).Should(HaveKeyWithValue("quick", "quick"))

		Expect(atomic.LoadInt32(&maxActive)).Should(Equal(int32(1)))
	})
})

var _ = Describe("ParseHTTPRequest", func() {
	It("accepts the largest body size limit", func() {
		r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query": "{ Types }"}`))
		req, err := handler.ParseHTTPRequest(r, &handler.ParseHTTPRequestOptions{
			MaxBodySize: math.MaxUint,
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.Query).Should(Equal("{ Types }"))
	})

	It("rejects multiple values for a parameter", func() {
		r := httptest.NewRequest(http.MethodGet, "/graphql?query=a&query=b", nil)
		_, err := handler.ParseHTTPRequest(r, nil)
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring(`multiple values are provided to "query"`))
	})

	It("ignores unsupported methods", func() {
		r := httptest.NewRequest(http.MethodPut, "/graphql", strings.NewReader(`{"query": "{ Types }"}`))
		req, err := handler.ParseHTTPRequest(r, nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.Query).Should(BeEmpty())
	})

	It("parses variables and operation name from JSON body", func() {
		r := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(
			`{"query": "query Q($id: String!) { getPokemonById(id: $id) { name } }", "operationName": "Q", "variables": {"id": "025"}}`))
		req, err := handler.ParseHTTPRequest(r, &handler.ParseHTTPRequestOptions{})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(req.OperationName).Should(Equal("Q"))
		Expect(req.Variables).Should(HaveKeyWithValue("id", "025"))
	})
})
