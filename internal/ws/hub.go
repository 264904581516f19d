package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/voin/voin-backend/internal/domain"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
)

const redisPubSubChannel = "voin:notifications"

// Hub manages WebSocket clients keyed by member id.
// Delivery is at-most-once: a member without a live connection misses the message.
type Hub struct {
	// Registered clients grouped by member ID
	clients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *targetedMessage
	direct     chan *directMessage
	outbound   chan []byte

	mu          sync.RWMutex
	redisClient *redis.Client
	instanceID  string
	ctx         context.Context
	cancel      context.CancelFunc
}

type targetedMessage struct {
	MemberID string
	Data     []byte
}

type directMessage struct {
	client *Client
	data   []byte
}

// redisMessage is what instances exchange over pub/sub
type redisMessage struct {
	Origin       string               `json:"origin"`
	MemberID     string               `json:"member_id"`
	Notification *domain.Notification `json:"notification"`
}

// NewHub creates a new Hub. redisClient may be nil (single instance)
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[string]map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *targetedMessage, 256),
		direct:      make(chan *directMessage, 64),
		outbound:    make(chan []byte, 256),
		redisClient: redisClient,
		instanceID:  uuid.New().String(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) unregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	if h.redisClient != nil {
		go h.subscribeRedis()
		go h.publishRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.memberID] == nil {
				h.clients[client.memberID] = make(map[*Client]struct{})
			}
			h.clients[client.memberID][client] = struct{}{}
			h.mu.Unlock()
			connectedClients.Inc()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.deliver(msg)

		case msg := <-h.direct:
			h.mu.Lock()
			if _, ok := h.clients[msg.client.memberID][msg.client]; ok {
				select {
				case msg.client.send <- msg.data:
				default:
					h.removeLocked(msg.client)
				}
			}
			h.mu.Unlock()

		case <-h.ctx.Done():
			h.mu.Lock()
			for _, clients := range h.clients {
				for client := range clients {
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// removeLocked closes the send channel exactly once. Caller holds h.mu.
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.memberID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	connectedClients.Dec()
	if len(clients) == 0 {
		delete(h.clients, client.memberID)
	}
}

func (h *Hub) deliver(msg *targetedMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[msg.MemberID]
	if !ok {
		notificationsDropped.WithLabelValues(dropOffline).Inc()
		return
	}

	delivered := false
	for client := range clients {
		select {
		case client.send <- msg.Data:
			delivered = true
		default:
			// 느린 클라이언트는 연결을 끊는다
			h.removeLocked(client)
			notificationsDropped.WithLabelValues(dropSlow).Inc()
		}
	}
	if delivered {
		notificationsDelivered.Inc()
	}
}

// SendToMember delivers to local connections and queues a publish to other
// instances. It never blocks the caller; Redis I/O happens in publishRedis.
func (h *Hub) SendToMember(memberID string, n *domain.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	h.enqueue(memberID, data)

	if h.redisClient == nil {
		return
	}
	payload, err := json.Marshal(&redisMessage{Origin: h.instanceID, MemberID: memberID, Notification: n})
	if err != nil {
		return
	}
	select {
	case h.outbound <- payload:
	default:
		notificationsDropped.WithLabelValues(dropQueueFull).Inc()
	}
}

// publishRedis drains the outbound queue to the pub/sub channel
func (h *Hub) publishRedis() {
	for {
		select {
		case payload := <-h.outbound:
			if err := h.redisClient.Publish(h.ctx, redisPubSubChannel, payload).Err(); err != nil {
				pkglogger.GetLogger().Warn().Err(err).Msg("notification publish failed")
			}
		case <-h.ctx.Done():
			return
		}
	}
}

func (h *Hub) enqueue(memberID string, data []byte) {
	select {
	case h.broadcast <- &targetedMessage{MemberID: memberID, Data: data}:
	default:
		notificationsDropped.WithLabelValues(dropQueueFull).Inc()
	}
}

// sendDirect queues a frame for a single connection (echo replies)
func (h *Hub) sendDirect(client *Client, n *domain.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}
	select {
	case h.direct <- &directMessage{client: client, data: data}:
	default:
		notificationsDropped.WithLabelValues(dropQueueFull).Inc()
	}
}

// Online returns the number of live connections for a member
func (h *Hub) Online(memberID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[memberID])
}

// subscribeRedis listens for notifications from other instances
func (h *Hub) subscribeRedis() {
	pubsub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rm redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &rm); err != nil || rm.Notification == nil {
				continue
			}
			// 자기 인스턴스가 보낸 메시지는 이미 로컬로 전달됨
			if rm.Origin == h.instanceID {
				continue
			}
			data, err := json.Marshal(rm.Notification)
			if err != nil {
				continue
			}
			h.enqueue(rm.MemberID, data)
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.cancel()
}
