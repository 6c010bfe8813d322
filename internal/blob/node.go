package blob

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sir_venger/filekeeper/pkg/storageclient"
	"github.com/sir_venger/filekeeper/pkg/storageproto"
	"golang.org/x/sync/errgroup"
)

const nodeDeleteConcurrency = 4

// Node хранит объекты на storage-узлах (cmd/storage).
// Фактический ключ: полный URL объекта на выбранном узле.
type Node struct {
	client storageclient.Client
	router *Router
}

func NewNode(client storageclient.Client, router *Router) *Node {
	return &Node{client: client, router: router}
}

// Put выбирает узел через Router и загружает на него объект.
func (n *Node) Put(ctx context.Context, key string, r io.Reader, size int64) (string, error) {
	nodes, err := n.router.Allocate(ctx, 1)
	if err != nil {
		return "", err
	}

	info, err := n.client.PutObject(ctx, nodes[0], storageclient.PutObjectRequest{
		Key:    key,
		Reader: r,
		Size:   size,
	})
	if err != nil {
		return "", err
	}
	if info.Key == "" {
		info.Key = key
	}
	return storageproto.ObjectURL(nodes[0], info.Key), nil
}

// Exists проверяет объект запросом HEAD к узлу, на котором он лежит.
func (n *Node) Exists(ctx context.Context, location string) (bool, error) {
	base, key, err := storageproto.SplitObjectURL(location)
	if err != nil {
		return false, err
	}
	if _, err := n.client.HeadObject(ctx, base, key); err != nil {
		if errors.Is(err, storageclient.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete удаляет объекты параллельно, каждый на своём узле.
func (n *Node) Delete(ctx context.Context, locations ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nodeDeleteConcurrency)
	for _, location := range locations {
		g.Go(func() error {
			base, key, err := storageproto.SplitObjectURL(location)
			if err != nil {
				return err
			}
			if err := n.client.DeleteObject(gctx, base, key); err != nil {
				return fmt.Errorf("delete %s: %w", location, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Download открывает поток объекта с его узла.
func (n *Node) Download(ctx context.Context, location string) (io.ReadCloser, error) {
	base, key, err := storageproto.SplitObjectURL(location)
	if err != nil {
		return nil, err
	}
	rc, err := n.client.GetObject(ctx, base, key)
	if err != nil {
		if errors.Is(err, storageclient.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
		}
		return nil, err
	}
	return rc, nil
}
