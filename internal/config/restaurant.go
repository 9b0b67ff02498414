package config

import "sync"

// RestaurantInfo is a snapshot of the restaurant metadata.
type RestaurantInfo struct {
	Name    string
	Address string
	Phone   string
	Open    bool
}

// Restaurant is the process-wide restaurant state: its metadata and the
// order id sequence. Construct one per process and pass it to whatever
// needs it. It is safe for concurrent use.
type Restaurant struct {
	mu     sync.Mutex
	info   RestaurantInfo
	nextID int
}

// NewRestaurant creates the holder with ids starting at 1.
func NewRestaurant(info RestaurantInfo) *Restaurant {
	return &Restaurant{info: info, nextID: 1}
}

// NextOrderID returns the next id of the monotonic sequence.
func (r *Restaurant) NextOrderID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return id
}

// PeekOrderID returns the id NextOrderID will hand out next.
func (r *Restaurant) PeekOrderID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextID
}

func (r *Restaurant) Info() RestaurantInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info
}

func (r *Restaurant) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.info.Open
}

func (r *Restaurant) SetOpen(open bool) {
	r.mu.Lock()
	r.info.Open = open
	r.mu.Unlock()
}

// Update replaces name, address and phone; empty values keep the current one.
func (r *Restaurant) Update(name, address, phone string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name != "" {
		r.info.Name = name
	}
	if address != "" {
		r.info.Address = address
	}
	if phone != "" {
		r.info.Phone = phone
	}
}
